package audio

// Register names one byte of the register pool.
type Register struct {
	Name    string
	Address int
}

var registerSheet = []Register{
	{"CH1Freq", 0x00},
	{"CH1Wave", 0x01},
	{"CH2Freq", 0x02},
	{"CH2Wave", 0x03},
	{"CH3Freq", 0x04},
	{"CH3Wave", 0x05},
	{"CH4Freq", 0x06},
	{"CH4Wave", 0x07},
}

// WriteRegister records a register write. The pool is observational only:
// synthesis never reads it back. Writes outside the pool are ignored.
func (c *Chip) WriteRegister(address int, value uint8) {
	if address < 0 || address >= RegisterPoolSize {
		return
	}
	c.regPool[address] = value
}

// RegisterPool returns a copy of the register pool.
func (c *Chip) RegisterPool() []byte {
	pool := make([]byte, RegisterPoolSize)
	copy(pool, c.regPool[:])
	return pool
}

func (c *Chip) RegisterPoolSize() int { return RegisterPoolSize }

// RegisterSheet returns the register names in address order.
func (c *Chip) RegisterSheet() []Register {
	sheet := make([]Register, len(registerSheet))
	copy(sheet, registerSheet)
	return sheet
}

func freqRegister(ch int) int { return 2 * ch }
func waveRegister(ch int) int { return 2*ch + 1 }
