package audio

import (
	"bytes"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBellCueStartsMuted(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBellCue(&buf)

	bell.Play()
	if buf.Len() != 0 {
		t.Fatalf("muted bell wrote %q", buf.String())
	}

	bell.SetMuted(false)
	bell.Play()
	bell.Play()
	if buf.String() != "\a\a" {
		t.Errorf("bell wrote %q, want two BEL bytes", buf.String())
	}
}

func TestBellCueZeroVolumeMutes(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBellCue(&buf)
	bell.SetMuted(false)
	bell.SetVolume(0)

	bell.Play()
	if buf.Len() != 0 {
		t.Errorf("bell at zero volume wrote %q", buf.String())
	}
}

func TestBellSetOnlyRingsOnDie(t *testing.T) {
	var buf bytes.Buffer
	set := BellSet(&buf)
	set.SetMuted(false)

	set.Point.Play()
	if buf.Len() != 0 {
		t.Errorf("point cue wrote %q, want nothing", buf.String())
	}
	set.Die.Play()
	if buf.String() != "\a" {
		t.Errorf("die cue wrote %q, want BEL", buf.String())
	}
}

func TestNopSet(t *testing.T) {
	set := Nop()
	set.SetMuted(false)
	set.SetVolume(1)
	set.Point.Play()
	set.Die.Play()
}

func TestSoundsHaveFiniteLength(t *testing.T) {
	tests := []struct {
		name  string
		sound func(beep.SampleRate) (beep.Streamer, error)
		want  int
	}{
		{"point", PointSound, 2 * sampleRate.N(60*time.Millisecond)},
		{"die", DieSound, 3 * sampleRate.N(90*time.Millisecond)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := tt.sound(sampleRate)
			if err != nil {
				t.Fatal(err)
			}
			total := 0
			buf := make([][2]float64, 512)
			for {
				n, ok := st.Stream(buf)
				total += n
				for i := 0; i < n; i++ {
					if buf[i][0] < -1 || buf[i][0] > 1 {
						t.Fatalf("sample %d out of range: %f", total-n+i, buf[i][0])
					}
				}
				if !ok {
					break
				}
			}
			if total != tt.want {
				t.Errorf("streamed %d samples, want %d", total, tt.want)
			}
		})
	}
}

func TestSpeakerCueMutedByDefault(t *testing.T) {
	sp := NewSpeaker()
	cue := NewSpeakerCue(sp, PointSound)

	cue.Play()
	if sp.mixer.Len() != 0 {
		t.Fatalf("muted cue queued %d streamers", sp.mixer.Len())
	}

	cue.SetMuted(false)
	cue.Play()
	if sp.mixer.Len() != 1 {
		t.Fatalf("unmuted cue queued %d streamers, want 1", sp.mixer.Len())
	}
}

func TestSpeakerCueRestartsOnRetrigger(t *testing.T) {
	sp := NewSpeaker()
	cue := NewSpeakerCue(sp, DieSound)
	cue.SetMuted(false)

	cue.Play()
	first := cue.ctrl
	cue.Play()

	if first.Streamer != nil {
		t.Error("retrigger should stop the previous run")
	}
	if cue.ctrl == first || cue.ctrl.Streamer == nil {
		t.Error("retrigger should start a fresh run")
	}

	cue.SetMuted(true)
	if cue.ctrl != nil {
		t.Error("muting should stop the running sound")
	}
}
