package sim

import "github.com/JasperNL/treestim/restart"

// Run drives the engine to exhaustion, feeding every node event to the
// monitor. Returns the first observation error, if any.
func Run(eng *Engine, m *restart.Monitor) error {
	for {
		id, nchildren, ok := eng.Step()
		if !ok {
			return nil
		}

		if err := m.Observe(id, nchildren); err != nil {
			return err
		}
	}
}
