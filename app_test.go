package hellomesh

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_StepInjectsResources(t *testing.T) {
	app := newApp()
	app.addResources(NewMockResource1("a"))

	var seen []string
	app.UseSystem(System(func(r *MockResource1) {
		seen = append(seen, "update:"+r.name)
	}))
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		seen = append(seen, "prelude:"+r.name)
		r.name = "b"
	}).InStage(Prelude))

	app.Step()
	assert.Equal(t, []string{"prelude:a", "update:b"}, seen)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := newApp()
	app.UseSystem(System(func(r *MockResource2) {}))

	assert.Panics(t, app.Step)
}

func TestApp_RunUntilExit(t *testing.T) {
	app := newApp()
	frames := 0
	var order []string
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}))
	app.Commands().
		OnShutdown(func() { order = append(order, "first") }).
		OnShutdown(func() { order = append(order, "second") })

	app.Run()

	assert.Equal(t, 3, frames)
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestApp_UseStage(t *testing.T) {
	app := newApp()
	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))

	var order []string
	app.UseSystem(System(func() { order = append(order, "render") }).InStage(Render))
	app.UseSystem(System(func() { order = append(order, "custom") }).InStage(custom))
	app.UseSystem(System(func() { order = append(order, "update") }))
	app.Step()

	assert.Equal(t, []string{"update", "custom", "render"}, order)
	assert.Panics(t, func() { app.UseStage(Stage{Name: "x"}, BeforeStage(Stage{Name: "missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "missing"})) })
}

func TestApp_Logger(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := newApp()
	assert.False(t, app.Logger().DebugEnabled())

	var out, errOut bytes.Buffer
	app.addResources(NewLoggerTo("test", true, &out, &errOut))
	log := app.Logger()
	log.Debugf("frame %d", 1)
	log.Warnf("careful")

	assert.Contains(t, out.String(), "[test] DEBUG: frame 1")
	assert.Contains(t, errOut.String(), "[test] WARN: careful")

	log.SetDebug(false)
	out.Reset()
	log.Debugf("hidden")
	assert.Empty(t, out.String())
}
