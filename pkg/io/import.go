package io

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/network"
)

// ScoreAttribute is the edge attribute holding the alignment score.
const ScoreAttribute = "alignment_score"

// DescriptionAttribute is the node attribute whose first token is the Hit_Id.
const DescriptionAttribute = "Description"

// Import reads the network file at path, choosing the decoder from the file
// extension. Unknown extensions are read as XGMML.
func Import(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "network file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInputFormat, err, "open %s", path)
	}
	defer f.Close()

	var g *network.Graph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		g, err = ReadJSON(f)
	default:
		g, err = ReadXGMML(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputFormat, err, "parse %s", path)
	}
	g.Meta()["source_file"] = path
	return g, nil
}

// Stem returns the file name of path without its network extension. It
// names the images of a sweep, e.g. "ssn.xgmml" becomes "ssn".
func Stem(path string) string {
	base := filepath.Base(path)
	switch ext := filepath.Ext(base); strings.ToLower(ext) {
	case ".xgmml", ".xml", ".json":
		return strings.TrimSuffix(base, ext)
	}
	return base
}
