package export

import (
	"encoding/json"

	linreg "github.com/abied-ch/ft-linear-regression"
)

type jsonCodec struct{}

func (jsonCodec) marshal(m linreg.Model) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) unmarshal(data []byte, m *linreg.Model) error {
	var params map[string]float64
	if err := json.Unmarshal(data, &params); err != nil {
		return err
	}
	got, err := linreg.ModelFromParams(params)
	if err != nil {
		return err
	}
	*m = got
	return nil
}
