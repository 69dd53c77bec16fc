package rcu

// AHBPeriph is the bit index of an AHB peripheral in AHBEN.
type AHBPeriph uint8

const (
	DMA0  AHBPeriph = 0
	DMA1  AHBPeriph = 1
	SRAMS AHBPeriph = 2
	FMCS  AHBPeriph = 4
	CRC   AHBPeriph = 6
	EXMC  AHBPeriph = 8
	USBFS AHBPeriph = 12
)

// APB1Periph is the bit index of an APB1 peripheral in APB1EN/APB1RST.
type APB1Periph uint8

const (
	TIMER1 APB1Periph = 0
	TIMER2 APB1Periph = 1
	TIMER3 APB1Periph = 2
	TIMER4 APB1Periph = 3
	TIMER5 APB1Periph = 4
	TIMER6 APB1Periph = 5
	WWDGT  APB1Periph = 11
	SPI1   APB1Periph = 14
	SPI2   APB1Periph = 15
	USART1 APB1Periph = 17
	USART2 APB1Periph = 18
	I2C0   APB1Periph = 21
	I2C1   APB1Periph = 22
	BKPI   APB1Periph = 27
	PMU    APB1Periph = 28
)

// APB2Periph is the bit index of an APB2 peripheral in APB2EN/APB2RST.
type APB2Periph uint8

const (
	AF     APB2Periph = 0
	PA     APB2Periph = 2
	PB     APB2Periph = 3
	PC     APB2Periph = 4
	PD     APB2Periph = 5
	PE     APB2Periph = 6
	ADC0   APB2Periph = 9
	ADC1   APB2Periph = 10
	TIMER0 APB2Periph = 11
	SPI0   APB2Periph = 12
	USART0 APB2Periph = 14
)
