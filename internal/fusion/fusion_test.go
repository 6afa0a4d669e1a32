package fusion

import (
	"reflect"
	"testing"

	"github.com/farcloser/mp3forensics/internal/types"
)

func TestFuseClampsAt100(t *testing.T) {
	verdict, combined, _ := Fuse(70, 60, nil, nil, DefaultThresholds())

	if combined != 100 {
		t.Errorf("combined = %f, want 100", combined)
	}

	if verdict != types.VerdictTranscode {
		t.Errorf("verdict = %v, want VerdictTranscode", verdict)
	}
}

func TestFuseVerdictBoundaries(t *testing.T) {
	thresholds := DefaultThresholds()

	cases := []struct {
		name     string
		combined float64
		want     types.Verdict
	}{
		{"below suspect", 34, types.VerdictOK},
		{"at suspect boundary", 35, types.VerdictSuspect},
		{"between suspect and transcode", 50, types.VerdictSuspect},
		{"at transcode boundary", 65, types.VerdictTranscode},
		{"well above transcode", 90, types.VerdictTranscode},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			verdict, combined, _ := Fuse(c.combined, 0, nil, nil, thresholds)
			if verdict != c.want {
				t.Errorf("verdict = %v, want %v", verdict, c.want)
			}

			if combined != c.combined {
				t.Errorf("combined = %f, want %f", combined, c.combined)
			}
		})
	}
}

func TestFuseMergesFlagsDedupingByFirstOccurrence(t *testing.T) {
	_, _, flags := Fuse(10, 10, []string{"a", "b"}, []string{"b", "c"}, DefaultThresholds())

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(flags, want) {
		t.Errorf("flags = %v, want %v", flags, want)
	}
}
