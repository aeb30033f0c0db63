// @focus: #sys { io } #input { keys }
package ansi

import "github.com/lixenwraith/cellterm/input"

// csiLetter maps CSI sequences ending in a letter (ESC [ [1;mod] X)
var csiLetter = map[byte]uint16{
	'A': input.VKUp,
	'B': input.VKDown,
	'C': input.VKRight,
	'D': input.VKLeft,
	'H': input.VKHome,
	'F': input.VKEnd,
	'P': input.VKF1,
	'Q': input.VKF2,
	'R': input.VKF3,
	'S': input.VKF4,
}

// csiTilde maps the numeric part of ESC [ N [;mod] ~ sequences
var csiTilde = map[string]uint16{
	"1":  input.VKHome,
	"7":  input.VKHome,
	"4":  input.VKEnd,
	"8":  input.VKEnd,
	"2":  input.VKInsert,
	"3":  input.VKDelete,
	"5":  input.VKPrior,
	"6":  input.VKNext,
	"11": input.VKF1,
	"12": input.VKF2,
	"13": input.VKF3,
	"14": input.VKF4,
	"15": input.VKF5,
	"17": input.VKF6,
	"18": input.VKF7,
	"19": input.VKF8,
	"20": input.VKF9,
	"21": input.VKF10,
	"23": input.VKF11,
	"24": input.VKF12,
}

// ss3Keys maps ESC O X sequences (application cursor mode, vt100 F1-F4)
var ss3Keys = map[byte]uint16{
	'A': input.VKUp,
	'B': input.VKDown,
	'C': input.VKRight,
	'D': input.VKLeft,
	'H': input.VKHome,
	'F': input.VKEnd,
	'P': input.VKF1,
	'Q': input.VKF2,
	'R': input.VKF3,
	'S': input.VKF4,
}

// linuxFKeys maps Linux console ESC [ [ X function keys
var linuxFKeys = map[byte]uint16{
	'A': input.VKF1,
	'B': input.VKF2,
	'C': input.VKF3,
	'D': input.VKF4,
	'E': input.VKF5,
}
