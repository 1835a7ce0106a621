package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Decode parses a scenario document with progressively more tolerant
// parsers: strict JSON first, then HJSON (comments, trailing commas,
// unquoted keys), then automated JSON repair as a last resort. Only a
// document that survives none of the three is an error.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	// HJSON decodes into a generic map; round-trip through strict JSON
	// so FlexFloat coercion still applies.
	var generic map[string]interface{}
	if err := hjson.Unmarshal(data, &generic); err == nil {
		if raw, err := reencode(generic); err == nil {
			if err := json.Unmarshal(raw, &doc); err == nil {
				return doc, nil
			}
		}
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return Document{}, fmt.Errorf("scenario is not valid JSON, HJSON, or repairable JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return Document{}, fmt.Errorf("scenario unreadable after repair: %v", err)
	}
	return doc, nil
}

// Load reads and decodes a scenario file.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Decode(data)
}
