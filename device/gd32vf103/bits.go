package gd32vf103

// RCU_CTL
const (
	RCU_CTL_IRC8MEN  = 1 << 0
	RCU_CTL_IRC8MSTB = 1 << 1
	RCU_CTL_HXTALEN  = 1 << 16
	RCU_CTL_HXTALSTB = 1 << 17
	RCU_CTL_HXTALBPS = 1 << 18
	RCU_CTL_CKMEN    = 1 << 19
	RCU_CTL_PLLEN    = 1 << 24
	RCU_CTL_PLLSTB   = 1 << 25
	RCU_CTL_PLL1EN   = 1 << 26
	RCU_CTL_PLL1STB  = 1 << 27
	RCU_CTL_PLL2EN   = 1 << 28
	RCU_CTL_PLL2STB  = 1 << 29
)

// RCU_CFG0
const (
	RCU_CFG0_SCS_Pos      = 0
	RCU_CFG0_SCS_Msk      = 0x3
	RCU_CFG0_SCSS_Pos     = 2
	RCU_CFG0_SCSS_Msk     = 0x3
	RCU_CFG0_AHBPSC_Pos   = 4
	RCU_CFG0_AHBPSC_Msk   = 0xF
	RCU_CFG0_APB1PSC_Pos  = 8
	RCU_CFG0_APB1PSC_Msk  = 0x7
	RCU_CFG0_APB2PSC_Pos  = 11
	RCU_CFG0_APB2PSC_Msk  = 0x7
	RCU_CFG0_ADCPSC_Pos   = 14
	RCU_CFG0_ADCPSC_Msk   = 0x3
	RCU_CFG0_PLLSEL       = 1 << 16
	RCU_CFG0_PLLMF_Pos    = 18
	RCU_CFG0_PLLMF_Msk    = 0xF
	RCU_CFG0_USBFSPSC_Pos = 22
	RCU_CFG0_USBFSPSC_Msk = 0x3
	RCU_CFG0_ADCPSC_2     = 1 << 28
	RCU_CFG0_PLLMF_4      = 1 << 29

	// System clock source selection
	RCU_SCS_IRC8M = 0
	RCU_SCS_HXTAL = 1
	RCU_SCS_PLL   = 2
)

// RCU_CFG1
const (
	RCU_CFG1_PREDV0_Pos = 0
	RCU_CFG1_PREDV0_Msk = 0xF
	RCU_CFG1_PREDV0SEL  = 1 << 16
)

// RCU_BDCTL
const (
	RCU_BDCTL_LXTALEN  = 1 << 0
	RCU_BDCTL_LXTALSTB = 1 << 1
	RCU_BDCTL_RTCEN    = 1 << 15
	RCU_BDCTL_BKPRST   = 1 << 16
)

// RCU_AHBEN
const (
	RCU_AHBEN_DMA0EN   = 1 << 0
	RCU_AHBEN_DMA1EN   = 1 << 1
	RCU_AHBEN_SRAMSPEN = 1 << 2
	RCU_AHBEN_FMCSPEN  = 1 << 4
	RCU_AHBEN_CRCEN    = 1 << 6
	RCU_AHBEN_EXMCEN   = 1 << 8
	RCU_AHBEN_USBFSEN  = 1 << 12
)

// RCU_APB2EN / RCU_APB2RST
const (
	RCU_APB2_AF     = 1 << 0
	RCU_APB2_PA     = 1 << 2
	RCU_APB2_PB     = 1 << 3
	RCU_APB2_PC     = 1 << 4
	RCU_APB2_PD     = 1 << 5
	RCU_APB2_PE     = 1 << 6
	RCU_APB2_ADC0   = 1 << 9
	RCU_APB2_ADC1   = 1 << 10
	RCU_APB2_TIMER0 = 1 << 11
	RCU_APB2_SPI0   = 1 << 12
	RCU_APB2_USART0 = 1 << 14
)

// RCU_APB1EN / RCU_APB1RST
const (
	RCU_APB1_TIMER1 = 1 << 0
	RCU_APB1_TIMER2 = 1 << 1
	RCU_APB1_TIMER3 = 1 << 2
	RCU_APB1_TIMER4 = 1 << 3
	RCU_APB1_TIMER5 = 1 << 4
	RCU_APB1_TIMER6 = 1 << 5
	RCU_APB1_WWDGT  = 1 << 11
	RCU_APB1_SPI1   = 1 << 14
	RCU_APB1_SPI2   = 1 << 15
	RCU_APB1_USART1 = 1 << 17
	RCU_APB1_USART2 = 1 << 18
	RCU_APB1_I2C0   = 1 << 21
	RCU_APB1_I2C1   = 1 << 22
	RCU_APB1_BKPI   = 1 << 27
	RCU_APB1_PMU    = 1 << 28
)

// GPIO_LOCK
const (
	GPIO_LOCK_LKK = 1 << 16
)

// AFIO_PCF0
const (
	AFIO_PCF0_SPI0_REMAP   = 1 << 0
	AFIO_PCF0_I2C0_REMAP   = 1 << 1
	AFIO_PCF0_USART0_REMAP = 1 << 2
	AFIO_PCF0_SWJ_CFG_Pos  = 24
	AFIO_PCF0_SWJ_CFG_Msk  = 0x7
)

// AFIO_EC
const (
	AFIO_EC_PIN_Pos  = 0
	AFIO_EC_PIN_Msk  = 0xF
	AFIO_EC_PORT_Pos = 4
	AFIO_EC_PORT_Msk = 0x7
	AFIO_EC_EOE      = 1 << 7
)

// BKP
const (
	BKP_OCTL_RCCV_Msk = 0x7F
	BKP_OCTL_COEN     = 1 << 7
	BKP_OCTL_ASOEN    = 1 << 8
	BKP_OCTL_ROSEL    = 1 << 9

	BKP_TPCTL_TPEN = 1 << 0
	BKP_TPCTL_TPAL = 1 << 1

	BKP_TPCS_TER  = 1 << 0
	BKP_TPCS_TIR  = 1 << 1
	BKP_TPCS_TPIE = 1 << 2
	BKP_TPCS_TEF  = 1 << 8
	BKP_TPCS_TIF  = 1 << 9
)

// PMU_CTL
const (
	PMU_CTL_BKPWEN = 1 << 8
)

// CRC_CTL
const (
	CRC_CTL_RST = 1 << 0
)

// USART
const (
	USART_STAT_PERR  = 1 << 0
	USART_STAT_FERR  = 1 << 1
	USART_STAT_NERR  = 1 << 2
	USART_STAT_ORERR = 1 << 3
	USART_STAT_IDLEF = 1 << 4
	USART_STAT_RBNE  = 1 << 5
	USART_STAT_TC    = 1 << 6
	USART_STAT_TBE   = 1 << 7

	USART_CTL0_REN  = 1 << 2
	USART_CTL0_TEN  = 1 << 3
	USART_CTL0_PM   = 1 << 9
	USART_CTL0_PCEN = 1 << 10
	USART_CTL0_WL   = 1 << 12
	USART_CTL0_UEN  = 1 << 13

	USART_CTL1_CKEN    = 1 << 11
	USART_CTL1_STB_Pos = 12
	USART_CTL1_STB_Msk = 0x3

	USART_CTL2_RTSEN = 1 << 8
	USART_CTL2_CTSEN = 1 << 9
)

// SPI
const (
	SPI_CTL0_CKPH    = 1 << 0
	SPI_CTL0_CKPL    = 1 << 1
	SPI_CTL0_MSTMOD  = 1 << 2
	SPI_CTL0_PSC_Pos = 3
	SPI_CTL0_PSC_Msk = 0x7
	SPI_CTL0_SPIEN   = 1 << 6
	SPI_CTL0_LF      = 1 << 7
	SPI_CTL0_SWNSS   = 1 << 8
	SPI_CTL0_SWNSSEN = 1 << 9
	SPI_CTL0_RO      = 1 << 10
	SPI_CTL0_FF16    = 1 << 11

	SPI_CTL1_NSSDRV = 1 << 2

	SPI_STAT_RBNE    = 1 << 0
	SPI_STAT_TBE     = 1 << 1
	SPI_STAT_TXURERR = 1 << 3
	SPI_STAT_CRCERR  = 1 << 4
	SPI_STAT_CONFERR = 1 << 5
	SPI_STAT_RXORERR = 1 << 6
	SPI_STAT_TRANS   = 1 << 7
	SPI_STAT_FERR    = 1 << 8
)

// TIMER
const (
	TIMER_CTL0_CEN   = 1 << 0
	TIMER_CTL0_UPDIS = 1 << 1
	TIMER_CTL0_UPS   = 1 << 2
	TIMER_CTL0_SPM   = 1 << 3
	TIMER_CTL0_ARSE  = 1 << 7

	TIMER_DMAINTEN_UPIE = 1 << 0
	TIMER_INTF_UPIF     = 1 << 0
	TIMER_SWEVG_UPG     = 1 << 0
)

// FWDGT
const (
	FWDGT_CTL_CMD_ENABLE        = 0xCCCC
	FWDGT_CTL_CMD_RELOAD        = 0xAAAA
	FWDGT_CTL_CMD_WRITE_ENABLE  = 0x5555
	FWDGT_CTL_CMD_WRITE_DISABLE = 0x0000

	FWDGT_PSC_Msk = 0x7
	FWDGT_RLD_Msk = 0xFFF

	FWDGT_STAT_PUD = 1 << 0
	FWDGT_STAT_RUD = 1 << 1
)

// DBG_CTL
const (
	DBG_CTL_SLP_HOLD    = 1 << 0
	DBG_CTL_DSLP_HOLD   = 1 << 1
	DBG_CTL_STB_HOLD    = 1 << 2
	DBG_CTL_FWDGT_HOLD  = 1 << 8
	DBG_CTL_WWDGT_HOLD  = 1 << 9
	DBG_CTL_TIMER0_HOLD = 1 << 10
	DBG_CTL_TIMER1_HOLD = 1 << 11
	DBG_CTL_TIMER2_HOLD = 1 << 12
	DBG_CTL_TIMER3_HOLD = 1 << 13
)
