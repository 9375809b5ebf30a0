package store

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
)

// encodeState serialises everything except the save preference, which lives
// in its own record.
func encodeState(st state.State) ([]byte, error) {
	st = st.Clone()
	st.SaveEnabled = true
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// decodeState overlays a stored blob on the defaults, so records written
// before a field existed still load.
func decodeState(blob []byte) (state.State, error) {
	st := state.Default()
	if err := json.Unmarshal(blob, &st); err != nil {
		return state.State{}, fmt.Errorf("decode state: %w", err)
	}
	return st.Normalize(), nil
}

// restore applies the load rules shared by every backend. A missing
// preference means saving is enabled. A corrupt blob is logged and ignored.
func restore(log *logger.Logger, savePref *bool, blob []byte) (state.State, bool) {
	saveEnabled := savePref == nil || *savePref

	if !saveEnabled || len(blob) == 0 {
		st := state.Default()
		st.SaveEnabled = saveEnabled
		return st, false
	}

	st, err := decodeState(blob)
	if err != nil {
		if log != nil {
			log.Warn("stored state unreadable; starting from defaults", "error", err)
		}
		return state.Default(), false
	}
	st.SaveEnabled = true
	return st, true
}
