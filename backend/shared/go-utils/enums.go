package utils

// ClientIDType tells how a retention scope was derived.
type ClientIDType int

const (
	ClientIDTypeBrowser ClientIDType = iota
	ClientIDTypeIP
)

func (c ClientIDType) String() string {
	switch c {
	case ClientIDTypeBrowser:
		return "browser"
	case ClientIDTypeIP:
		return "ip"
	default:
		return "unknown"
	}
}
