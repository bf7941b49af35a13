package assets

import (
	"fmt"
	"io/fs"
)

// TemplateSet holds the HTML templates a page is rendered from.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Page   string // Page skeleton, executed with pipeline.PageData
	Topics string // Topic list fragment, executed with []pipeline.TopicItem
	Facts  string // Facts list fragment, executed with []pipeline.FactItem
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// Template file names inside a template set directory.
const (
	pageFile   = "page.html"
	topicsFile = "topics.html"
	factsFile  = "facts.html"
)

// templateFiles lists the files every template set must provide, in the
// order they are reported when missing.
var templateFiles = []string{pageFile, topicsFile, factsFile}

// readTemplateSet reads the three template files of name from fsys under dir.
// Both loaders share it so a set is complete or rejected the same way
// regardless of where it lives.
func readTemplateSet(fsys fs.FS, dir, name string) (*TemplateSet, error) {
	contents := make(map[string]string, len(templateFiles))
	var missing []string

	for _, file := range templateFiles {
		data, err := fs.ReadFile(fsys, dir+"/"+file)
		if err != nil {
			if isNotExist(err) {
				missing = append(missing, file)
				continue
			}
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, file, err)
		}
		contents[file] = string(data)
	}

	if len(missing) == len(templateFiles) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, missing[0])
	}

	return &TemplateSet{
		Name:   name,
		Page:   contents[pageFile],
		Topics: contents[topicsFile],
		Facts:  contents[factsFile],
	}, nil
}
