package hellomesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	var names []string
	for _, s := range app.stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PreRender", "Render", "PostRender"}, names)
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
	if mockModule.installed {
		t.Errorf("Install must wait for Build")
	}
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "one"}
	module2 := &MockModule{order: &order, name: "two"}

	app := NewAppBuilder().
		UseModule(module1).
		UseModule(module2).
		Build()

	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
	assert.Equal(t, []string{"one", "two"}, order)
	assert.Len(t, app.modules, 2)
}

func TestLoggingModule(t *testing.T) {
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "x", Debug: true}).Build()

	_, ok := Resource[DefaultLogger](app)
	assert.True(t, ok)
	assert.True(t, app.Logger().DebugEnabled())
}
