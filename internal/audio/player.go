package audio

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// player is a discovered system audio binary plus the argument shape it
// wants. vol is in [0,1]; players without a volume flag ignore it.
type player struct {
	name string
	bin  string
	args func(path string, vol float64) []string
}

// playerCandidates lists the binaries worth probing on this platform,
// in preference order.
func playerCandidates() []player {
	switch runtime.GOOS {
	case "darwin":
		return []player{
			{name: "afplay", args: func(path string, vol float64) []string {
				return []string{"-v", fmt.Sprintf("%.2f", vol), path}
			}},
		}
	case "windows":
		return []player{
			{name: "powershell", args: func(path string, _ float64) []string {
				return []string{"-NoProfile", "-Command",
					fmt.Sprintf("(New-Object Media.SoundPlayer %q).PlaySync()", path)}
			}},
		}
	default:
		return []player{
			{name: "paplay", args: func(path string, vol float64) []string {
				return []string{fmt.Sprintf("--volume=%d", int(vol*65536)), path}
			}},
			{name: "aplay", args: func(path string, _ float64) []string {
				return []string{"-q", path}
			}},
			{name: "ffplay", args: func(path string, vol float64) []string {
				return []string{"-nodisp", "-autoexit", "-loglevel", "quiet",
					"-volume", strconv.Itoa(int(vol * 100)), path}
			}},
		}
	}
}

// discoverPlayer probes the candidate list and returns the first binary
// present on PATH, or nil when the host has no usable player.
func discoverPlayer(lookPath func(string) (string, error)) *player {
	for _, cand := range playerCandidates() {
		path, err := lookPath(cand.name)
		if err != nil {
			continue
		}
		p := cand
		p.bin = path
		return &p
	}
	return nil
}

// ProbePlayer reports which system player would be used, for
// diagnostics surfaces.
func ProbePlayer() (name, bin string, ok bool) {
	p := discoverPlayer(exec.LookPath)
	if p == nil {
		return "", "", false
	}
	return p.name, p.bin, true
}
