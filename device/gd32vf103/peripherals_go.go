//go:build !tinygo

package gd32vf103

// NewPeripherals allocates a register file in ordinary memory. Tests use it
// (through the sim package) to get an isolated chip per test.
func NewPeripherals() *Peripherals {
	return &Peripherals{
		RCU:    new(RCU_Type),
		GPIOA:  new(GPIO_Type),
		GPIOB:  new(GPIO_Type),
		GPIOC:  new(GPIO_Type),
		GPIOD:  new(GPIO_Type),
		GPIOE:  new(GPIO_Type),
		AFIO:   new(AFIO_Type),
		BKP:    new(BKP_Type),
		PMU:    new(PMU_Type),
		CRC:    new(CRC_Type),
		USART0: new(USART_Type),
		USART1: new(USART_Type),
		USART2: new(USART_Type),
		SPI0:   new(SPI_Type),
		SPI1:   new(SPI_Type),
		SPI2:   new(SPI_Type),
		TIMER0: new(TIMER_Type),
		TIMER1: new(TIMER_Type),
		TIMER2: new(TIMER_Type),
		TIMER3: new(TIMER_Type),
		TIMER4: new(TIMER_Type),
		TIMER5: new(TIMER_Type),
		TIMER6: new(TIMER_Type),
		FWDGT:  new(FWDGT_Type),
		CTIMER: new(CTIMER_Type),
		DBG:    new(DBG_Type),
		ESIG:   new(ESIG_Type),
	}
}

func chipPeripherals() *Peripherals {
	return NewPeripherals()
}
