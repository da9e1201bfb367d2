package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Haptic pulse length in milliseconds
const (
	HapticPulseMillis = 30
)

// isAndroid reports whether the process runs inside an Android app sandbox.
// Fyne Android builds report GOOS=android, but the environment markers are
// checked too because test binaries may run under a plain linux GOOS.
func isAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != ""
}

// TriggerHaptic fires a short vibration pulse on devices that have a
// vibrator. Desktop platforms are a no-op. The pulse is purely best-effort
// and failures are ignored.
func TriggerHaptic() {
	if !isAndroid() {
		return
	}

	// Run in background, don't block the gesture handler
	go func() {
		millis := fmt.Sprint(HapticPulseMillis)

		// Android 12+ routes vibration through vibrator_manager
		cmd := exec.Command("cmd", "vibrator_manager", "synced", "oneshot", millis)
		if err := cmd.Run(); err == nil {
			return
		}

		// Older Android versions keep the plain vibrator service
		cmd = exec.Command("cmd", "vibrator", "vibrate", millis)
		_ = cmd.Run()
	}()
}
