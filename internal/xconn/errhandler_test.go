package xconn

import "testing"

type fakeXErr struct{ msg string }

func (e fakeXErr) BadId() uint32      { return 1 }
func (e fakeXErr) SequenceId() uint16 { return 0 }
func (e fakeXErr) Error() string      { return e.msg }

func TestErrNameExtractsLeadingWord(t *testing.T) {
	cases := map[string]string{
		"BadWindow{Id: 42}":               "BadWindow",
		"BadMatch: sequence 7":            "BadMatch",
		"RenderBadPicture{Id: 1}":         "RenderBadPicture",
		"SomeOtherFormat without braces":  "SomeOtherFormat",
	}
	for in, want := range cases {
		if got := errName(fakeXErr{msg: in}); got != want {
			t.Errorf("errName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsAllowlistedRace(t *testing.T) {
	allowed := []string{"BadWindow", "BadDrawable", "BadMatch", "BadDamage", "RenderBadPicture", "BadPixmap"}
	for _, name := range allowed {
		if !isAllowlistedRace(fakeXErr{msg: name}) {
			t.Errorf("%s should be allowlisted", name)
		}
	}
	if isAllowlistedRace(fakeXErr{msg: "BadAccess"}) {
		t.Error("BadAccess must not be allowlisted")
	}
}
