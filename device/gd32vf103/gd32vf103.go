// Hand written file based on the GD32VF103 User Manual (Rev 1.2) register
// descriptions. Only the fields used by the HAL are named.

// Package gd32vf103 is the register file of the GD32VF103 RISC-V MCU: one
// struct per peripheral block with every register at its vendor offset.
package gd32vf103

import "gd32hal/volatile"

// Peripheral base addresses
const (
	TIMER1_BASE uintptr = 0x40000000
	TIMER2_BASE uintptr = 0x40000400
	TIMER3_BASE uintptr = 0x40000800
	TIMER4_BASE uintptr = 0x40000C00
	TIMER5_BASE uintptr = 0x40001000
	TIMER6_BASE uintptr = 0x40001400
	FWDGT_BASE  uintptr = 0x40003000
	SPI1_BASE   uintptr = 0x40003800
	SPI2_BASE   uintptr = 0x40003C00
	USART1_BASE uintptr = 0x40004400
	USART2_BASE uintptr = 0x40004800
	BKP_BASE    uintptr = 0x40006C00
	PMU_BASE    uintptr = 0x40007000
	AFIO_BASE   uintptr = 0x40010000
	GPIOA_BASE  uintptr = 0x40010800
	GPIOB_BASE  uintptr = 0x40010C00
	GPIOC_BASE  uintptr = 0x40011000
	GPIOD_BASE  uintptr = 0x40011400
	GPIOE_BASE  uintptr = 0x40011800
	TIMER0_BASE uintptr = 0x40012C00
	SPI0_BASE   uintptr = 0x40013000
	USART0_BASE uintptr = 0x40013800
	RCU_BASE    uintptr = 0x40021000
	CRC_BASE    uintptr = 0x40023000
	CTIMER_BASE uintptr = 0xD1000000
	DBG_BASE    uintptr = 0xE0042000

	// Device electronic signature (read only)
	ESIG_BASE uintptr = 0x1FFFF7E0
)

// Reset and clock unit
type RCU_Type struct {
	CTL     volatile.Register32 // 0x00
	CFG0    volatile.Register32 // 0x04
	INT     volatile.Register32 // 0x08
	APB2RST volatile.Register32 // 0x0C
	APB1RST volatile.Register32 // 0x10
	AHBEN   volatile.Register32 // 0x14
	APB2EN  volatile.Register32 // 0x18
	APB1EN  volatile.Register32 // 0x1C
	BDCTL   volatile.Register32 // 0x20
	RSTSCK  volatile.Register32 // 0x24
	AHBRST  volatile.Register32 // 0x28
	CFG1    volatile.Register32 // 0x2C
	_       [4]byte
	DSV     volatile.Register32 // 0x34
}

// General purpose I/O port
type GPIO_Type struct {
	CTL0  volatile.Register32 // 0x00, pins 0-7
	CTL1  volatile.Register32 // 0x04, pins 8-15
	ISTAT volatile.Register32 // 0x08
	OCTL  volatile.Register32 // 0x0C
	BOP   volatile.Register32 // 0x10
	BC    volatile.Register32 // 0x14
	LOCK  volatile.Register32 // 0x18
}

// Alternate function I/O
type AFIO_Type struct {
	EC     volatile.Register32    // 0x00
	PCF0   volatile.Register32    // 0x04
	EXTISS [4]volatile.Register32 // 0x08 - 0x14
	_      [4]byte
	PCF1   volatile.Register32 // 0x1C
}

// Backup registers
type BKP_Type struct {
	_     [4]byte
	DATA0 [10]volatile.Register32 // 0x04 - 0x28, DATA0..DATA9
	OCTL  volatile.Register32     // 0x2C
	TPCTL volatile.Register32     // 0x30
	TPCS  volatile.Register32     // 0x34
	_     [8]byte
	DATA1 [32]volatile.Register32 // 0x40 - 0xBC, DATA10..DATA41
}

// Power management unit
type PMU_Type struct {
	CTL volatile.Register32 // 0x00
	CS  volatile.Register32 // 0x04
}

// CRC calculation unit
type CRC_Type struct {
	DATA  volatile.Register32 // 0x00
	FDATA volatile.Register32 // 0x04
	CTL   volatile.Register32 // 0x08
}

// Universal synchronous/asynchronous receiver transmitter
type USART_Type struct {
	STAT volatile.Register32 // 0x00
	DATA volatile.Register32 // 0x04
	BAUD volatile.Register32 // 0x08
	CTL0 volatile.Register32 // 0x0C
	CTL1 volatile.Register32 // 0x10
	CTL2 volatile.Register32 // 0x14
	GP   volatile.Register32 // 0x18
}

// Serial peripheral interface
type SPI_Type struct {
	CTL0    volatile.Register32 // 0x00
	CTL1    volatile.Register32 // 0x04
	STAT    volatile.Register32 // 0x08
	DATA    volatile.Register32 // 0x0C
	CRCPOLY volatile.Register32 // 0x10
	RCRC    volatile.Register32 // 0x14
	TCRC    volatile.Register32 // 0x18
	I2SCTL  volatile.Register32 // 0x1C
	I2SPSC  volatile.Register32 // 0x20
}

// Timer (TIMER0 advanced, TIMER1-4 general, TIMER5-6 basic share the layout)
type TIMER_Type struct {
	CTL0     volatile.Register32 // 0x00
	CTL1     volatile.Register32 // 0x04
	SMCFG    volatile.Register32 // 0x08
	DMAINTEN volatile.Register32 // 0x0C
	INTF     volatile.Register32 // 0x10
	SWEVG    volatile.Register32 // 0x14
	CHCTL0   volatile.Register32 // 0x18
	CHCTL1   volatile.Register32 // 0x1C
	CHCTL2   volatile.Register32 // 0x20
	CNT      volatile.Register32 // 0x24
	PSC      volatile.Register32 // 0x28
	CAR      volatile.Register32 // 0x2C
	CREP     volatile.Register32 // 0x30
	CHCV     [4]volatile.Register32
	CCHP     volatile.Register32 // 0x44
	DMACFG   volatile.Register32 // 0x48
	DMATB    volatile.Register32 // 0x4C
}

// Free watchdog timer
type FWDGT_Type struct {
	CTL  volatile.Register32 // 0x00
	PSC  volatile.Register32 // 0x04
	RLD  volatile.Register32 // 0x08
	STAT volatile.Register32 // 0x0C
}

// Core timer (RISC-V machine timer)
type CTIMER_Type struct {
	MTIME_LO    volatile.Register32 // 0x000
	MTIME_HI    volatile.Register32 // 0x004
	MTIMECMP_LO volatile.Register32 // 0x008
	MTIMECMP_HI volatile.Register32 // 0x00C
	_           [0xFE8]byte
	MSTOP       volatile.Register32 // 0xFF8
	MSIP        volatile.Register32 // 0xFFC
}

// Debug
type DBG_Type struct {
	ID  volatile.Register32 // 0x00
	CTL volatile.Register32 // 0x04
}

// Device electronic signature
type ESIG_Type struct {
	MEMORY_DENSITY volatile.Register32 // 0x00, flash [15:0], SRAM [31:16]
	_              [4]byte
	UNIQUE_ID      [3]volatile.Register32 // 0x08
}
