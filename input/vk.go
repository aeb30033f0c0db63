package input

// Virtual key codes carried in Sample.VirtualKey. Values follow the console
// virtual-key numbering so the Windows backend passes them through untouched.
const (
	VKBack   uint16 = 0x08
	VKTab    uint16 = 0x09
	VKReturn uint16 = 0x0D
	VKEscape uint16 = 0x1B
	VKSpace  uint16 = 0x20
	VKPrior  uint16 = 0x21 // Page Up
	VKNext   uint16 = 0x22 // Page Down
	VKEnd    uint16 = 0x23
	VKHome   uint16 = 0x24
	VKLeft   uint16 = 0x25
	VKUp     uint16 = 0x26
	VKRight  uint16 = 0x27
	VKDown   uint16 = 0x28
	VKInsert uint16 = 0x2D
	VKDelete uint16 = 0x2E

	VK0 uint16 = 0x30 // '0'..'9' follow
	VKA uint16 = 0x41 // 'A'..'Z' follow

	VKF1  uint16 = 0x70
	VKF2  uint16 = 0x71
	VKF3  uint16 = 0x72
	VKF4  uint16 = 0x73
	VKF5  uint16 = 0x74
	VKF6  uint16 = 0x75
	VKF7  uint16 = 0x76
	VKF8  uint16 = 0x77
	VKF9  uint16 = 0x78
	VKF10 uint16 = 0x79
	VKF11 uint16 = 0x7A
	VKF12 uint16 = 0x7B

	VKOEMMinus uint16 = 0xBD // '-'
	VKOEM2     uint16 = 0xBF // '/'
	VKOEM3     uint16 = 0xC0 // '`'
	VKOEM4     uint16 = 0xDB // '['
)

// VKForChar returns the virtual key that types ch on a US layout, 0 if none
func VKForChar(ch rune) uint16 {
	switch {
	case ch >= 'a' && ch <= 'z':
		return VKA + uint16(ch-'a')
	case ch >= 'A' && ch <= 'Z':
		return VKA + uint16(ch-'A')
	case ch >= '0' && ch <= '9':
		return VK0 + uint16(ch-'0')
	case ch == ' ':
		return VKSpace
	case ch == '-' || ch == '_':
		return VKOEMMinus
	case ch == '/' || ch == '?':
		return VKOEM2
	case ch == '`' || ch == '~':
		return VKOEM3
	case ch == '[' || ch == '{':
		return VKOEM4
	}
	return 0
}
