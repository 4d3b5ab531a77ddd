package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recipe is the structured recipe returned to clients
type Recipe struct {
	Name      string    `json:"name"`
	Steps     Steps     `json:"steps"`
	Calories  float64   `json:"calories"`
	Nutrition Nutrition `json:"nutrition"`
}

// Nutrition holds macro estimates, each a string with a unit suffix such as "20g"
type Nutrition struct {
	Protein Amount `json:"protein"`
	Carbs   Amount `json:"carbs"`
	Fat     Amount `json:"fat"`
}

// NutritionUnavailable is substituted when the model omits the nutrition object.
var NutritionUnavailable = Nutrition{Protein: "N/A", Carbs: "N/A", Fat: "N/A"}

// Steps is always serialized as a single string but also accepts a list of
// steps, which the model sometimes returns despite the prompt.
type Steps string

func (s *Steps) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Steps(str)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = Steps(strings.Join(list, "\n"))
		return nil
	}

	return fmt.Errorf("invalid steps format: %s", string(data))
}

// Amount can handle both string and number values for a nutrition field
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*a = Amount(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Amount(strconv.FormatFloat(num, 'f', -1, 64) + "g")
		return nil
	}

	return fmt.Errorf("invalid nutrition amount: %s", string(data))
}
