package critical

import "testing"

func TestSectionRestoresOnPanic(t *testing.T) {
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		Section(func() {
			if !Active() {
				t.Error("Active() false inside section")
			}
			panic("boom")
		})
	}()

	if Active() {
		t.Error("section left open after panic")
	}
}

func TestNestedSections(t *testing.T) {
	Section(func() {
		Section(func() {})
		if !Active() {
			t.Error("inner section closed the outer one")
		}
	})
	if Active() {
		t.Error("section left open")
	}
}
