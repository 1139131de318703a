package api

import "fmt"

func errInvalidStage(stage string) error {
	return fmt.Errorf("invalid type of development stage: %s", stage)
}
