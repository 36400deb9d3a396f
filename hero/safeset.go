package hero

import (
	"os"
	"strings"
)

// SafeSet lists processes the governor must never target, by exact name
// and by pid. It is a plain value passed into classification and
// termination so different invocations can carry different lists.
type SafeSet struct {
	names map[string]struct{}
	pids  map[int32]struct{}
}

// NewSafeSet builds a SafeSet from explicit names and pids.
func NewSafeSet(names []string, pids []int32) SafeSet {
	s := SafeSet{
		names: make(map[string]struct{}, len(names)),
		pids:  make(map[int32]struct{}, len(pids)),
	}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	for _, p := range pids {
		s.pids[p] = struct{}{}
	}
	return s
}

// defaultSafeNames is the curated list of system-critical process names.
// Matching is exact and case sensitive. Entries for foreign platforms
// are inert and kept so one list serves every build.
var defaultSafeNames = []string{
	// desktop shells and window managers
	"plasmashell", "kwin_x11", "kwin_wayland", "Xorg", "Xwayland", "gnome-shell",
	// login and session managers
	"sddm", "gdm", "systemd", "systemd-logind",
	// audio
	"pipewire", "wireplumber", "pulseaudio",
	// network and time
	"NetworkManager", "wpa_supplicant", "dhcpcd", "chronyd", "systemd-resolved",
	// system daemons
	"dbus-daemon", "polkitd", "udisksd", "upowerd", "bluetoothd", "cupsd", "avahi-daemon",
	// interactive shells and interpreters
	"zsh", "bash", "fish", "sh", "python", "python3", "perl", "ruby",
	// KDE session services
	"kded5", "ksmserver", "kdeinit5", "kdeinit6", "kglobalaccel5", "kglobalaccel",
	// ourselves
	"genesis",
	// Windows critical
	"explorer.exe", "taskmgr.exe", "csrss.exe", "lsass.exe",
	"winlogon.exe", "dwm.exe", "svchost.exe", "services.exe",
	"wininit.exe", "smss.exe", "spoolsv.exe", "Registry", "System",
}

// DefaultSafeSet returns the stock protection list: the curated names,
// PID 1 and the calling process itself.
func DefaultSafeSet() SafeSet {
	return NewSafeSet(defaultSafeNames, []int32{1, int32(os.Getpid())})
}

// HasName reports whether name is protected.
func (s SafeSet) HasName(name string) bool {
	_, ok := s.names[name]
	return ok
}

// HasPID reports whether pid is protected.
func (s SafeSet) HasPID(pid int32) bool {
	_, ok := s.pids[pid]
	return ok
}

// Protected decides whether p may be considered for termination at all.
// The checks run in order: protected pid, protected name, kernel-thread
// naming convention. If any attribute needed for the decision cannot be
// read, the process is treated as protected: over-protecting is the
// acceptable failure mode, targeting the wrong process is not.
func Protected(p Process, safe SafeSet) bool {
	if safe.HasPID(p.Pid()) {
		return true
	}
	name, err := p.Name()
	if err != nil {
		return true
	}
	name = strings.TrimSpace(name)
	if safe.HasName(name) {
		return true
	}
	// kernel threads show up as e.g. [kworker/0:1]
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		return true
	}
	return false
}
