package export

import (
	"bytes"

	"gopkg.in/yaml.v3"

	linreg "github.com/abied-ch/ft-linear-regression"
)

type yamlCodec struct{}

func (yamlCodec) marshal(m linreg.Model) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) unmarshal(data []byte, m *linreg.Model) error {
	var params map[string]float64
	if err := yaml.Unmarshal(data, &params); err != nil {
		return err
	}
	got, err := linreg.ModelFromParams(params)
	if err != nil {
		return err
	}
	*m = got
	return nil
}
