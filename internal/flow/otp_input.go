package flow

// codeLength is the number of digits in a one-time code.
const codeLength = 6

// OTPInput models the six single-digit entry cells of the verification
// screen: typing a digit fills the focused cell and advances, backspace
// clears the focused cell or steps back onto the previous one. The
// affordance is cosmetic; only the assembled code is ever submitted.
type OTPInput struct {
	cells [codeLength]byte // 0 means empty
	focus int
}

func NewOTPInput() *OTPInput {
	return &OTPInput{}
}

// Type enters one character into the focused cell. Non-digits are
// ignored. Typing into the last cell keeps focus there.
func (in *OTPInput) Type(ch byte) {
	if ch < '0' || ch > '9' {
		return
	}
	in.cells[in.focus] = ch
	if in.focus < codeLength-1 {
		in.focus++
	}
}

// Backspace clears the focused cell, or moves focus back one cell when
// the focused cell is already empty.
func (in *OTPInput) Backspace() {
	if in.cells[in.focus] != 0 {
		in.cells[in.focus] = 0
		return
	}
	if in.focus > 0 {
		in.focus--
	}
}

// Code assembles the entered digits in cell order.
func (in *OTPInput) Code() string {
	var b []byte
	for _, c := range in.cells {
		if c != 0 {
			b = append(b, c)
		}
	}
	return string(b)
}

// Complete reports whether all six cells are filled.
func (in *OTPInput) Complete() bool {
	for _, c := range in.cells {
		if c == 0 {
			return false
		}
	}
	return true
}

// Reset clears every cell and refocuses the first.
func (in *OTPInput) Reset() {
	*in = OTPInput{}
}

// Focus returns the index of the focused cell.
func (in *OTPInput) Focus() int {
	return in.focus
}
