package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		name  string
		args  []string
	}{
		{"start", "start", nil},
		{"mode scripted", "mode", []string{"scripted"}},
		{"talk start", "talk", []string{"start"}},
		{"move 0 6000", "move", []string{"0", "6000"}},
		{"eyes -40 30", "eyes", []string{"-40", "30"}},
		{"  STOP  ", "stop", nil},
		{"play 'ominous greeting'", "play", []string{"ominous greeting"}},
	}

	for _, tc := range tests {
		cmd, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.input, err)
			continue
		}
		if cmd == nil {
			t.Errorf("Parse(%q) = nil", tc.input)
			continue
		}
		if cmd.Name != tc.name {
			t.Errorf("Parse(%q).Name = %q, want %q", tc.input, cmd.Name, tc.name)
		}
		if len(cmd.Args) != len(tc.args) {
			t.Errorf("Parse(%q).Args = %v, want %v", tc.input, cmd.Args, tc.args)
			continue
		}
		for j := range tc.args {
			if cmd.Args[j] != tc.args[j] {
				t.Errorf("Parse(%q).Args[%d] = %q, want %q", tc.input, j, cmd.Args[j], tc.args[j])
			}
		}
	}
}

func TestParseEmptyAndComments(t *testing.T) {
	for _, input := range []string{"", "   ", "\n", "# a comment"} {
		cmd, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", input, err)
		}
		if cmd != nil {
			t.Errorf("Parse(%q) = %+v, want nil", input, cmd)
		}
	}
}

func TestParseUnterminatedQuote(t *testing.T) {
	if _, err := Parse(`play "half a name`); err == nil {
		t.Error("unterminated quote did not fail")
	}
}
