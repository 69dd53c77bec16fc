package gd32vf103

import (
	"testing"
	"unsafe"
)

func TestRegisterOffsets(t *testing.T) {
	var rcu RCU_Type
	var gpio GPIO_Type
	var bkp BKP_Type
	var tim TIMER_Type
	var ct CTIMER_Type
	var esig ESIG_Type

	testCases := []struct {
		name   string
		got    uintptr
		expect uintptr
	}{
		{"RCU_CFG1", unsafe.Offsetof(rcu.CFG1), 0x2C},
		{"RCU_DSV", unsafe.Offsetof(rcu.DSV), 0x34},
		{"GPIO_LOCK", unsafe.Offsetof(gpio.LOCK), 0x18},
		{"BKP_DATA0", unsafe.Offsetof(bkp.DATA0), 0x04},
		{"BKP_OCTL", unsafe.Offsetof(bkp.OCTL), 0x2C},
		{"BKP_TPCS", unsafe.Offsetof(bkp.TPCS), 0x34},
		{"BKP_DATA10", unsafe.Offsetof(bkp.DATA1), 0x40},
		{"TIMER_CAR", unsafe.Offsetof(tim.CAR), 0x2C},
		{"TIMER_CCHP", unsafe.Offsetof(tim.CCHP), 0x44},
		{"CTIMER_MSIP", unsafe.Offsetof(ct.MSIP), 0xFFC},
		{"ESIG_UNIQUE_ID", unsafe.Offsetof(esig.UNIQUE_ID), 0x08},
	}

	for _, tc := range testCases {
		if tc.got != tc.expect {
			t.Errorf("%s at offset 0x%X, expected 0x%X", tc.name, tc.got, tc.expect)
		}
	}

	if size := unsafe.Sizeof(bkp); size != 0xC0 {
		t.Errorf("BKP block is 0x%X bytes, expected 0xC0", size)
	}
}

func TestTakeOnce(t *testing.T) {
	if Take() == nil {
		t.Fatal("first Take returned nil")
	}
	if Take() != nil {
		t.Error("second Take returned the peripherals again")
	}
}
