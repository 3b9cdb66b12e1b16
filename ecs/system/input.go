package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/logicgates/ecs"
	"github.com/milk9111/logicgates/ecs/component"
)

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	x, y := ebiten.CursorPosition()
	primaryPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	togglePressed := inpututil.IsKeyJustPressed(ebiten.KeyTab)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		togglePressed = togglePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.PointerX = float64(x)
		input.PointerY = float64(y)
		input.PrimaryPressed = primaryPressed
		input.TogglePressed = togglePressed
	})
}
