// @focus: #sys { audio }
package sound

import (
	"os/exec"

	"github.com/pkg/errors"
)

// ErrNoSink is returned when no supported playback command is installed
var ErrNoSink = errors.New("sound: no playback command found")

// Sink describes a command that plays raw 44.1kHz stereo s16le PCM from stdin
type Sink struct {
	Name string
	Path string
	Args []string
}

// sinks in priority order: pacat > pw-cat > aplay > play (sox) > ffplay
var sinks = []Sink{
	{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback"}},
	{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-"}},
	{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"}},
	{Name: "play", Args: []string{"-q", "-t", "raw", "-r", "44100", "-e", "signed", "-b", "16", "-c", "2", "-"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", "44100", "-i", "pipe:0", "-loglevel", "quiet"}},
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectSink returns the first playback command found on PATH
func DetectSink() (Sink, error) {
	for _, s := range sinks {
		if path, err := lookPath(s.Name); err == nil {
			s.Path = path
			return s, nil
		}
	}
	return Sink{}, ErrNoSink
}

// command builds the playback process for one tone
func (s Sink) command() *exec.Cmd {
	return exec.Command(s.Path, s.Args...)
}
