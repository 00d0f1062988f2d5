package postgres

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func encodeStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func decodeStrings(data datatypes.JSON) []string {
	values := []string{}
	if len(data) == 0 {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return []string{}
	}
	return values
}
