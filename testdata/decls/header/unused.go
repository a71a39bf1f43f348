package header

type Unused struct {
	Value int64
}
