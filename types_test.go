package mp3forensics

import "testing"

func TestParseProfile(t *testing.T) {
	cases := []struct {
		in      string
		want    Profile
		wantErr bool
	}{
		{"", ProfileDefault, false},
		{"default", ProfileDefault, false},
		{"strict", ProfileStrict, false},
		{"lenient", ProfileLenient, false},
		{"bogus", 0, true},
	}

	for _, c := range cases {
		got, err := ParseProfile(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseProfile(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
		}

		if err == nil && got != c.want {
			t.Errorf("ParseProfile(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestOptionsForProfileAdjustsThresholds(t *testing.T) {
	strict := OptionsForProfile(ProfileStrict)
	lenient := OptionsForProfile(ProfileLenient)
	def := DefaultOptions()

	if !(strict.Thresholds.Suspect < def.Thresholds.Suspect && strict.Thresholds.Transcode < def.Thresholds.Transcode) {
		t.Error("expected strict profile to lower both thresholds")
	}

	if !(lenient.Thresholds.Suspect > def.Thresholds.Suspect && lenient.Thresholds.Transcode > def.Thresholds.Transcode) {
		t.Error("expected lenient profile to raise both thresholds")
	}
}

func TestProfileString(t *testing.T) {
	cases := map[Profile]string{
		ProfileDefault: "default",
		ProfileStrict:  "strict",
		ProfileLenient: "lenient",
	}

	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Profile(%d).String() = %q, want %q", p, got, want)
		}
	}
}
