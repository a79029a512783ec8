package term

import "strings"

// KeyEvent is a single decoded keyboard input.
type KeyEvent struct {
	Raw   string // raw bytes/text carried by the event (paste payload, single rune, etc.)
	Name  string // logical key name: "up", "down", "left", "right", "return", "tab",
	// "backtab", "escape", "backspace", "wordLeft", "wordRight",
	// "wordBackspace", "paste", "pageup", "pagedown", a single printable
	// rune, or a ctrl-letter name ("c", "d", ...).
	Shift bool
	Ctrl  bool
}

// sequence maps a CSI tail (the bytes after "ESC [") to a logical key name
// and shift flag. SS3 ("ESC O") sequences are not decoded.
type sequence struct {
	name  string
	shift bool
}

var csiSequences = map[string]sequence{
	"A": {"up", false},
	"B": {"down", false},
	"C": {"right", false},
	"D": {"left", false},
	"Z": {"backtab", true},
	"5~": {"pageup", false},
	"6~": {"pagedown", false},
	"1;3D": {"wordLeft", false},
	"1;3C": {"wordRight", false},
	"13;2u": {"return", true},
	"27;2;13~": {"return", true},
	"13u": {"return", false},
	"9u":  {"tab", false},
	"9;2u": {"backtab", true},
	"27u":  {"escape", false},
	"127u": {"backspace", false},
}

// ParseKey decodes one raw input chunk (as read off stdin in a single read
// call) into a KeyEvent. It recognizes the normative set described in the
// spec: CSI arrows/page keys/back-tab, alt+enter, alt+arrow word navigation,
// legacy ESC b / ESC f, alt+backspace, Kitty CSI-u sequences, bracketed
// paste, ctrl-letter bytes, and lone/double escape.
func ParseKey(b []byte) KeyEvent {
	if len(b) == 0 {
		return KeyEvent{Name: ""}
	}

	// Bracketed paste: ESC [200~ ... ESC [201~
	if s := string(b); strings.HasPrefix(s, "\x1b[200~") {
		payload := strings.TrimPrefix(s, "\x1b[200~")
		payload = strings.TrimSuffix(payload, "\x1b[201~")
		payload = strings.ReplaceAll(payload, "\r\n", "\n")
		return KeyEvent{Name: "paste", Raw: payload}
	}

	if b[0] != 0x1b {
		// Any otherwise-unmatched multi-byte input not starting with ESC is
		// treated as a paste (terminals lacking bracketed-paste support).
		if len(b) > 1 {
			return KeyEvent{Name: "paste", Raw: strings.ReplaceAll(string(b), "\r\n", "\n")}
		}
		return parseSingleByte(b[0])
	}

	// Lone ESC or double ESC.
	if len(b) == 1 {
		return KeyEvent{Name: "escape"}
	}
	if len(b) == 2 && b[1] == 0x1b {
		return KeyEvent{Name: "escape"}
	}

	// Alt+Enter.
	if len(b) == 2 && (b[1] == '\r' || b[1] == '\n') {
		return KeyEvent{Name: "return", Shift: true}
	}
	// Legacy Alt+b / Alt+f word navigation.
	if len(b) == 2 && b[1] == 'b' {
		return KeyEvent{Name: "wordLeft"}
	}
	if len(b) == 2 && b[1] == 'f' {
		return KeyEvent{Name: "wordRight"}
	}
	// Alt+Backspace.
	if len(b) == 2 && b[1] == 0x7f {
		return KeyEvent{Name: "wordBackspace"}
	}

	if len(b) >= 2 && b[1] == '[' {
		tail := string(b[2:])
		if seq, ok := csiSequences[tail]; ok {
			return KeyEvent{Name: seq.name, Shift: seq.shift}
		}
	}

	// Anything else following ESC that we don't recognize: surface as escape
	// so the caller can at least dismiss the current context.
	return KeyEvent{Name: "escape"}
}

func parseSingleByte(b byte) KeyEvent {
	switch {
	case b == 0x1b:
		return KeyEvent{Name: "escape"}
	case b == '\r' || b == '\n':
		return KeyEvent{Name: "return"}
	case b == '\t':
		return KeyEvent{Name: "tab"}
	case b == 0x7f || b == 0x08:
		return KeyEvent{Name: "backspace"}
	case b == 3: // Ctrl+C
		return KeyEvent{Name: "c", Ctrl: true}
	case b == 4: // Ctrl+D
		return KeyEvent{Name: "d", Ctrl: true}
	case b >= 1 && b <= 31:
		return KeyEvent{Name: string(rune(b + 96)), Ctrl: true}
	default:
		return KeyEvent{Name: string(rune(b)), Raw: string(rune(b))}
	}
}
