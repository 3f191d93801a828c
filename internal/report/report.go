package report

import (
	"encoding/json"
	"os"

	"example.com/pixgate/internal/pix"
)

func SaveChargeJSON(ch pix.Charge, out string) error {
	b, err := json.MarshalIndent(ch, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadChargeJSON(path string) (pix.Charge, error) {
	var ch pix.Charge
	b, err := os.ReadFile(path)
	if err != nil {
		return ch, err
	}
	err = json.Unmarshal(b, &ch)
	return ch, err
}
