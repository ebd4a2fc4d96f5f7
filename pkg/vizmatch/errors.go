package vizmatch

import "github.com/pkg/errors"

var (
	ErrProjectMustBeSet  = errors.New("project must be set")
	ErrRendererMustBeSet = errors.New("renderer must be set")

	ErrProjectDirNotFound  = errors.New("project directory does not exist")
	ErrHomolDirNotFound    = errors.New("Homol directory does not exist")
	ErrMatchRecordNotFound = errors.New("match record does not exist")
)
