package commands

import (
	"fmt"

	json "github.com/clarketm/json"
)

func printResult(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
