package glimpse

//go:generate stringer -type=Key -trimprefix=Key

type Key uint32

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyBackspace
	KeyEnter
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyR
	KeyQ
	KeyEscape
)
