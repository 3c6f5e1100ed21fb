package engine

// Renderer instantiates templates for a translated model. Rendering is done
// outside this module; the engine only constructs and owns the instance.
type Renderer interface {
	// Environment returns the environment the renderer was built with.
	Environment() *Environment
}

// RendererFactory builds the renderer an engine owns.
type RendererFactory func(env *Environment) (Renderer, error)
