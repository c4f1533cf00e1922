// Package input maps key names to camera and view actions. Both the
// terminal and the window shell translate their native key events to the
// names used here.
package input

import "github.com/taigrr/cubes/pkg/render"

type Action int

const (
	None Action = iota
	Forward
	Back
	StrafeLeft
	StrafeRight
	Up
	Down
	PitchUp
	PitchDown
	YawLeft
	YawRight
	ToggleSpin
	ToggleMode
	ToggleVisibility
	Quit
)

var names = [...]string{
	None:             "none",
	Forward:          "forward",
	Back:             "back",
	StrafeLeft:       "strafe-left",
	StrafeRight:      "strafe-right",
	Up:               "up",
	Down:             "down",
	PitchUp:          "pitch-up",
	PitchDown:        "pitch-down",
	YawLeft:          "yaw-left",
	YawRight:         "yaw-right",
	ToggleSpin:       "toggle-spin",
	ToggleMode:       "toggle-mode",
	ToggleVisibility: "toggle-visibility",
	Quit:             "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(names) {
		return "unknown"
	}
	return names[a]
}

// Bindings maps lower-case key names to actions.
var Bindings = map[string]Action{
	"w":      Forward,
	"s":      Back,
	"a":      StrafeLeft,
	"d":      StrafeRight,
	"space":  Up,
	"k":      Down,
	"up":     PitchUp,
	"down":   PitchDown,
	"left":   YawLeft,
	"right":  YawRight,
	"p":      ToggleSpin,
	"m":      ToggleMode,
	"v":      ToggleVisibility,
	"q":      Quit,
	"escape": Quit,
	"ctrl+c": Quit,
}

// Lookup returns the action bound to key, or None.
func Lookup(key string) Action {
	return Bindings[key]
}

// Camera reports whether a moves or turns the camera.
func (a Action) Camera() bool {
	return a >= Forward && a <= YawRight
}

// Apply performs a camera action, moving by moveStep units or turning by
// turnStep degrees. It reports whether the camera changed.
func Apply(cam *render.Camera, a Action, moveStep, turnStep float64) bool {
	switch a {
	case Forward:
		cam.MoveForward(moveStep)
	case Back:
		cam.MoveForward(-moveStep)
	case StrafeLeft:
		cam.MoveRight(-moveStep)
	case StrafeRight:
		cam.MoveRight(moveStep)
	case Up:
		cam.MoveUp(moveStep)
	case Down:
		cam.MoveUp(-moveStep)
	case PitchUp:
		cam.RotateX(turnStep)
	case PitchDown:
		cam.RotateX(-turnStep)
	case YawLeft:
		cam.RotateY(turnStep)
	case YawRight:
		cam.RotateY(-turnStep)
	default:
		return false
	}
	return true
}

// NextMode cycles between filled and wireframe rendering.
func NextMode(m render.RenderMode) render.RenderMode {
	if m == render.ModeWireframe {
		return render.ModeFilled
	}
	return render.ModeWireframe
}

// NextVisibility cycles between depth-buffered and painter's ordering.
func NextVisibility(v render.VisibilityMode) render.VisibilityMode {
	if v == render.VisibilityPainter {
		return render.VisibilityDepth
	}
	return render.VisibilityPainter
}
