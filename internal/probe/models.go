package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
)

// ModelsProber verifies the credential can list models and reports which
// model families the probes depend on are visible.
type ModelsProber struct {
	Client *openai.Client
}

// Family detection inputs: a model family is considered available when any
// of its known IDs appears in the listing, except realtime which is matched
// by substring because the preview IDs are dated snapshots.
var modelFamilies = []struct {
	Name string
	IDs  []string
}{
	{Name: "whisper", IDs: []string{"whisper-1"}},
	{Name: "gpt-4", IDs: []string{"gpt-4-turbo-preview", "gpt-4"}},
	{Name: "tts", IDs: []string{"tts-1-hd", "tts-1"}},
}

// Probe lists the model catalog and flags family availability.
func (p *ModelsProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	start := time.Now()
	list, err := p.Client.ListModels(ctx)
	result.ResponseTime = float64(time.Since(start).Milliseconds())

	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			result.HTTPStatus = apiErr.StatusCode
		}
		return result
	}

	result.Status = StatusOK
	result.HTTPStatus = 200
	result.SetDetail("model_count", len(list.Data))
	result.AddNote(fmt.Sprintf("%d models available", len(list.Data)))

	families := make(map[string]bool, len(modelFamilies)+1)
	for _, fam := range modelFamilies {
		families[fam.Name] = list.ContainsAny(fam.IDs...)
	}
	families["realtime"] = containsRealtime(list)

	for name, available := range families {
		if !available {
			result.AddNote(name + " models not visible")
		}
	}
	result.SetDetail("families", families)

	return result
}

// Name returns the name of this probe.
func (p *ModelsProber) Name() string {
	return "probe models"
}

func containsRealtime(list *openai.ModelList) bool {
	for _, m := range list.Data {
		if strings.Contains(m.ID, "realtime") {
			return true
		}
	}
	return false
}
