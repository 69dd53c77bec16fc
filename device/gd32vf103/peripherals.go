package gd32vf103

import "sync/atomic"

// Peripherals holds one pointer per register block. Whoever holds the
// bundle owns the chip; the HAL narrows it into exclusive handles.
type Peripherals struct {
	RCU    *RCU_Type
	GPIOA  *GPIO_Type
	GPIOB  *GPIO_Type
	GPIOC  *GPIO_Type
	GPIOD  *GPIO_Type
	GPIOE  *GPIO_Type
	AFIO   *AFIO_Type
	BKP    *BKP_Type
	PMU    *PMU_Type
	CRC    *CRC_Type
	USART0 *USART_Type
	USART1 *USART_Type
	USART2 *USART_Type
	SPI0   *SPI_Type
	SPI1   *SPI_Type
	SPI2   *SPI_Type
	TIMER0 *TIMER_Type
	TIMER1 *TIMER_Type
	TIMER2 *TIMER_Type
	TIMER3 *TIMER_Type
	TIMER4 *TIMER_Type
	TIMER5 *TIMER_Type
	TIMER6 *TIMER_Type
	FWDGT  *FWDGT_Type
	CTIMER *CTIMER_Type
	DBG    *DBG_Type
	ESIG   *ESIG_Type
}

var taken uint32

// Take returns the peripherals on the first call and nil afterwards.
func Take() *Peripherals {
	if !atomic.CompareAndSwapUint32(&taken, 0, 1) {
		return nil
	}
	return chipPeripherals()
}
