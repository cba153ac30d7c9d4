package retrieval

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/futig/plan-backend/internal/entity"
)

//go:embed seed_corpus.json
var seedCorpus []byte

// LoadCorpus reads a reference corpus from a JSON file. An empty path loads
// the embedded seed corpus.
func LoadCorpus(path string) ([]entity.PlanExample, error) {
	data := seedCorpus
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read corpus file: %w", err)
		}
		data = fileData
	}

	var examples []entity.PlanExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse corpus JSON: %w", err)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("corpus contains no examples")
	}
	return examples, nil
}
