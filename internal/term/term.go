package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	csiHome          = "\x1b[H"
	csiEraseLine     = "\x1b[K"
	csiEraseToScreen = "\x1b[J"
	csiHideCursor    = "\x1b[?25l"
	csiShowCursor    = "\x1b[?25h"
	csiAltScreenOn   = "\x1b[?1049h"
	csiAltScreenOff  = "\x1b[?1049l"
	csiBracketedOn   = "\x1b[?2004h"
	csiBracketedOff  = "\x1b[?2004l"
	csiKittyOn       = "\x1b[>1u"
	csiKittyOff      = "\x1b[<u"
)

// Screen owns the terminal for the lifetime of the full-screen session: raw
// mode on stdin, the alternate screen buffer, and resize notification.
type Screen struct {
	in       *os.File
	out      *os.File
	oldState *term.State

	resizeStop chan struct{}
	resizeDone chan struct{}
}

// EnterFullScreen acquires the alternate screen buffer, hides the cursor,
// enables bracketed paste and the Kitty disambiguate-keyboard mode, and puts
// stdin into raw mode. Release happens via ExitFullScreen on every exit path.
func EnterFullScreen() (*Screen, error) {
	in, out := os.Stdin, os.Stdout
	fd := int(in.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(int(out.Fd())) {
		return nil, fmt.Errorf("toolform: stdin/stdout is not a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	s := &Screen{in: in, out: out, oldState: old}
	io.WriteString(out, csiAltScreenOn+csiHideCursor+csiBracketedOn+csiKittyOn)
	return s, nil
}

// ExitFullScreen restores every mode enabled by EnterFullScreen, in reverse
// order, and restores the original terminal state. Safe to call more than
// once and safe to defer from a panic/signal handler.
func (s *Screen) ExitFullScreen() {
	if s == nil {
		return
	}
	io.WriteString(s.out, csiKittyOff+csiBracketedOff+csiShowCursor+csiAltScreenOff)
	if s.oldState != nil {
		term.Restore(int(s.in.Fd()), s.oldState)
		s.oldState = nil
	}
}

// ScreenSize returns cols x rows, queried fresh so SIGWINCH-triggered
// resizes take effect on the very next paint.
func (s *Screen) ScreenSize() (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(s.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// Paint overwrites the screen in place: cursor-home, then for each of the
// first `rows` lines the content followed by erase-to-end-of-line and a
// newline, then erase-from-cursor-to-end-of-screen if fewer lines than rows
// were supplied. No full-screen clear is ever emitted.
func (s *Screen) Paint(lines []string, rows int) {
	w := bufio.NewWriterSize(s.out, 64*1024)
	io.WriteString(w, csiHome)
	n := len(lines)
	if n > rows {
		n = rows
	}
	for i := 0; i < n; i++ {
		io.WriteString(w, lines[i])
		io.WriteString(w, csiEraseLine)
		io.WriteString(w, "\r\n")
	}
	if n < rows {
		io.WriteString(w, csiEraseToScreen)
	}
	w.Flush()
}

// WatchResize invokes handler(cols, rows) whenever SIGWINCH fires, until
// Stop is called.
func (s *Screen) WatchResize(handler func(cols, rows int)) {
	s.resizeStop = make(chan struct{})
	s.resizeDone = make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		defer close(s.resizeDone)
		defer signal.Stop(sigCh)
		for {
			select {
			case <-s.resizeStop:
				return
			case <-sigCh:
				cols, rows := s.ScreenSize()
				handler(cols, rows)
			}
		}
	}()
}

// StopResize stops the resize watcher started by WatchResize.
func (s *Screen) StopResize() {
	if s.resizeStop == nil {
		return
	}
	close(s.resizeStop)
	<-s.resizeDone
	s.resizeStop = nil
}

// ReadLoop polls stdin for input, decoding each chunk read into a KeyEvent
// and sending it on events. It exits when stop is closed or a read error
// (including EOF) occurs.
func (s *Screen) ReadLoop(events chan<- KeyEvent, stop <-chan struct{}) {
	fd := int(s.in.Fd())
	buf := make([]byte, 256)
	for {
		select {
		case <-stop:
			return
		default:
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if n == 0 {
			continue
		}
		rn, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return
		}
		if rn == 0 {
			return
		}
		chunk := make([]byte, rn)
		copy(chunk, buf[:rn])
		select {
		case events <- ParseKey(chunk):
		case <-stop:
			return
		}
	}
}

// JoinLines is a small helper matching the renderer's convention of building
// a []string of exactly `rows` entries before Paint.
func JoinLines(lines []string, rows int) []string {
	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		if i < len(lines) {
			out[i] = lines[i]
		} else {
			out[i] = ""
		}
	}
	return out
}
