//go:build tinygo

package gd32vf103

import "unsafe"

func chipPeripherals() *Peripherals {
	return &Peripherals{
		RCU:    (*RCU_Type)(unsafe.Pointer(RCU_BASE)),
		GPIOA:  (*GPIO_Type)(unsafe.Pointer(GPIOA_BASE)),
		GPIOB:  (*GPIO_Type)(unsafe.Pointer(GPIOB_BASE)),
		GPIOC:  (*GPIO_Type)(unsafe.Pointer(GPIOC_BASE)),
		GPIOD:  (*GPIO_Type)(unsafe.Pointer(GPIOD_BASE)),
		GPIOE:  (*GPIO_Type)(unsafe.Pointer(GPIOE_BASE)),
		AFIO:   (*AFIO_Type)(unsafe.Pointer(AFIO_BASE)),
		BKP:    (*BKP_Type)(unsafe.Pointer(BKP_BASE)),
		PMU:    (*PMU_Type)(unsafe.Pointer(PMU_BASE)),
		CRC:    (*CRC_Type)(unsafe.Pointer(CRC_BASE)),
		USART0: (*USART_Type)(unsafe.Pointer(USART0_BASE)),
		USART1: (*USART_Type)(unsafe.Pointer(USART1_BASE)),
		USART2: (*USART_Type)(unsafe.Pointer(USART2_BASE)),
		SPI0:   (*SPI_Type)(unsafe.Pointer(SPI0_BASE)),
		SPI1:   (*SPI_Type)(unsafe.Pointer(SPI1_BASE)),
		SPI2:   (*SPI_Type)(unsafe.Pointer(SPI2_BASE)),
		TIMER0: (*TIMER_Type)(unsafe.Pointer(TIMER0_BASE)),
		TIMER1: (*TIMER_Type)(unsafe.Pointer(TIMER1_BASE)),
		TIMER2: (*TIMER_Type)(unsafe.Pointer(TIMER2_BASE)),
		TIMER3: (*TIMER_Type)(unsafe.Pointer(TIMER3_BASE)),
		TIMER4: (*TIMER_Type)(unsafe.Pointer(TIMER4_BASE)),
		TIMER5: (*TIMER_Type)(unsafe.Pointer(TIMER5_BASE)),
		TIMER6: (*TIMER_Type)(unsafe.Pointer(TIMER6_BASE)),
		FWDGT:  (*FWDGT_Type)(unsafe.Pointer(FWDGT_BASE)),
		CTIMER: (*CTIMER_Type)(unsafe.Pointer(CTIMER_BASE)),
		DBG:    (*DBG_Type)(unsafe.Pointer(DBG_BASE)),
		ESIG:   (*ESIG_Type)(unsafe.Pointer(ESIG_BASE)),
	}
}
