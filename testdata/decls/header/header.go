package header

type Mode uint32

const (
	Mode_Off Mode = iota
	Mode_On
	Mode_Auto
)

type Vec2 struct {
	X float32
	Y float32
}

type Shape struct {
	Mode   Mode
	Points [4]Vec2
	Next   *Shape
	Tag    [8]byte
}
