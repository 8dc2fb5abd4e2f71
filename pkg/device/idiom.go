package device

import (
	"encoding/json"
	"runtime"
)

// Idiom is a device form factor.
type Idiom int

const (
	IdiomUnspecified Idiom = iota
	IdiomMac
	IdiomPod
	IdiomPhone
	IdiomPad
	IdiomTV
	IdiomHomePod
	IdiomWatch
	IdiomCarPlay
	IdiomVision
	IdiomDesktop
)

type idiomInfo struct {
	label  string
	symbol string
	color  string
}

var idioms = map[Idiom]idiomInfo{
	IdiomUnspecified: {"Unspecified", "questionmark.square.dashed", "gray"},
	IdiomMac:         {"Mac", "macwindow", "blue"},
	IdiomPod:         {"iPod touch", "ipodtouch", "mint"},
	IdiomPhone:       {"iPhone", "iphone", "red"},
	IdiomPad:         {"iPad", "ipad", "purple"},
	IdiomTV:          {"Apple TV", "tv", "brown"},
	IdiomHomePod:     {"HomePod", "homepod", "pink"},
	IdiomWatch:       {"Apple Watch", "applewatch", "red"},
	IdiomCarPlay:     {"CarPlay", "car", "green"},
	IdiomVision:      {"Apple Vision", "visionpro", "yellow"},
	IdiomDesktop:     {"Desktop", "desktopcomputer", "orange"},
}

// Idioms lists every idiom in display order.
func Idioms() []Idiom {
	return []Idiom{
		IdiomUnspecified, IdiomMac, IdiomPod, IdiomPhone, IdiomPad, IdiomTV,
		IdiomHomePod, IdiomWatch, IdiomCarPlay, IdiomVision, IdiomDesktop,
	}
}

// Label returns the display name.
func (i Idiom) Label() string {
	return idioms[i.known()].label
}

// Symbol returns the icon token.
func (i Idiom) Symbol() string {
	return idioms[i.known()].symbol
}

// Color returns the highlight colour token.
func (i Idiom) Color() string {
	return idioms[i.known()].color
}

func (i Idiom) String() string {
	return i.Label()
}

// MarshalJSON encodes the idiom as its label.
func (i Idiom) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Label())
}

func (i Idiom) known() Idiom {
	if _, ok := idioms[i]; ok {
		return i
	}
	return IdiomUnspecified
}

// HostIdiom guesses the idiom of the machine from the target OS.
func HostIdiom() Idiom {
	return idiomForOS(runtime.GOOS)
}

func idiomForOS(goos string) Idiom {
	switch goos {
	case "darwin":
		return IdiomMac
	case "ios":
		return IdiomPhone
	case "android":
		return IdiomPhone
	case "linux", "windows", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return IdiomDesktop
	default:
		return IdiomUnspecified
	}
}
