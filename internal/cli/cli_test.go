package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	chem "github.com/moleview/moleview"
	"github.com/moleview/moleview/internal/config"
)

const testData = "../../test"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"moleview"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testData, name))
	gt.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// unknownElement is a structure with an element without covalent radius
const unknownElement = "2\n\nQq 0 0 0\nC 0 0 1.9\n"

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isPNG(t *testing.T, path string) bool {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return bytes.HasPrefix(data, []byte("\x89PNG"))
}

func TestView(t *testing.T) {
	t.Run("default output next to the input", func(t *testing.T) {
		input := copyFixture(t, "benzene.xyz")
		out, err := runCLI(t, input)
		gt.NoError(t, err)

		expected := filepath.Join(filepath.Dir(input), "benzene.png")
		gt.String(t, out).Contains(expected)
		gt.V(t, isPNG(t, expected)).Equal(true)
	})

	t.Run("view subcommand with options", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "ethanol.svg")
		_, err := runCLI(t, "view",
			"--orient", "principal",
			"--labels",
			"--no-grid",
			"-o", output,
			filepath.Join(testData, "ethanol.xyz"),
		)
		gt.NoError(t, err)

		data, err := os.ReadFile(output)
		gt.NoError(t, err)
		gt.String(t, string(data)).Contains("<svg")
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "moleview.toml")
		gt.NoError(t, os.WriteFile(cfgPath, []byte("[view]\nelev = 90.0\nlegend = false\n\n[colors]\nO = \"#00ff00\"\n"), 0o644))
		output := filepath.Join(dir, "water.png")
		_, err := runCLI(t, "--config", cfgPath, "--frame", "2", "-o", output, filepath.Join(testData, "water3.xyz"))
		gt.NoError(t, err)
		gt.V(t, isPNG(t, output)).Equal(true)
	})

	t.Run("flags after the file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "water.pdf")
		_, err := runCLI(t, filepath.Join(testData, "water.pdb"), "-o", output, "--no-axis", "--no-title")
		gt.NoError(t, err)
		info, err := os.Stat(output)
		gt.NoError(t, err)
		gt.Number(t, info.Size()).Greater(int64(0))
	})

	t.Run("cutoff bonds and vdw radii", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "benzene.png")
		_, err := runCLI(t, "--bond-method", "cutoff", "--radius", "vdw", "-o", output, filepath.Join(testData, "benzene.xyz"))
		gt.NoError(t, err)
		gt.V(t, isPNG(t, output)).Equal(true)
	})

	t.Run("element without covalent radius", func(t *testing.T) {
		input := writeFixture(t, "odd.xyz", unknownElement)
		out, err := runCLI(t, input)
		gt.NoError(t, err)
		gt.String(t, out).Contains("odd.png")
	})

	testCases := map[string][]string{
		"no file":            {},
		"missing file":       {filepath.Join(testData, "nothere.xyz")},
		"truncated file":     {filepath.Join(testData, "truncated.xyz")},
		"frame out of range": {"--frame", "3", filepath.Join(testData, "water3.xyz")},
		"bad orientation":    {"--orient", "sideways", filepath.Join(testData, "ethanol.xyz")},
		"unknown image type": {"-o", filepath.Join(os.TempDir(), "moleview-test.bmp"), filepath.Join(testData, "ethanol.xyz")},
		"bad log level":      {"--log-level", "loud", filepath.Join(testData, "ethanol.xyz")},
		"bad bond method":    {"--bond-method", "guess", filepath.Join(testData, "ethanol.xyz")},
		"bad radius":         {"--radius", "ionic", filepath.Join(testData, "ethanol.xyz")},
		"zero cutoff":        {"--bond-cutoff", "0", filepath.Join(testData, "ethanol.xyz")},
	}
	for name, args := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := runCLI(t, args...)
			gt.Error(t, err)
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	testCases := map[string]string{
		"benzene.xyz":      "benzene.png",
		"dir/water.xyz.gz": "dir/water.png",
		"protein.pdb.ZST":  "protein.png",
		"noextension":      "noextension.png",
		"run.1/frames.xyz": "run.1/frames.png",
	}
	for input, expected := range testCases {
		gt.Equal(t, defaultOutput(input), expected)
	}
}

func TestInfo(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := runCLI(t, "info", filepath.Join(testData, "benzene.xyz"))
		gt.NoError(t, err)
		gt.String(t, out).Contains("C6H6")
		gt.String(t, out).Contains("C:6 H:6")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, "info", "--json", filepath.Join(testData, "twowaters.xyz"))
		gt.NoError(t, err)

		var s Summary
		gt.NoError(t, json.Unmarshal([]byte(out), &s))
		gt.Equal(t, s.Atoms, 6)
		gt.Equal(t, s.Formula, "H4O2")
		gt.Equal(t, s.Bonds, 4)
		gt.Equal(t, len(s.Fragments), 2)
		gt.Equal(t, s.Rings, 0)
		gt.Equal(t, s.Elements["O"], 2)
		gt.Equal(t, s.BoxMax[0], 5.0)
		gt.Equal(t, len(s.FragmentCentroids), 2)
	})

	t.Run("json keys always present", func(t *testing.T) {
		input := writeFixture(t, "odd.xyz", unknownElement)
		out, err := runCLI(t, "info", "--json", input)
		gt.NoError(t, err)

		var raw map[string]any
		gt.NoError(t, json.Unmarshal([]byte(out), &raw))
		for _, key := range []string{"comment", "mass", "fragment_centroids"} {
			_, ok := raw[key]
			gt.V(t, ok).Equal(true)
		}
		gt.Equal(t, raw["comment"], any(""))
		gt.Equal(t, raw["mass"], any(0.0))
		gt.Equal(t, raw["bonds"], any(1.0))
	})

	t.Run("cutoff method", func(t *testing.T) {
		out, err := runCLI(t, "info", "--json", "--bond-method", "cutoff", "--hydrogen-cutoff", "0.9", filepath.Join(testData, "ethanol.xyz"))
		gt.NoError(t, err)

		var s Summary
		gt.NoError(t, json.Unmarshal([]byte(out), &s))
		gt.Equal(t, s.Bonds, 2)
	})

	t.Run("bad bond method", func(t *testing.T) {
		_, err := runCLI(t, "info", "--bond-method", "guess", filepath.Join(testData, "benzene.xyz"))
		gt.Error(t, err)
	})

	t.Run("frame", func(t *testing.T) {
		out, err := runCLI(t, "info", "--json", "--frame", "1", filepath.Join(testData, "water3.xyz"))
		gt.NoError(t, err)

		var s Summary
		gt.NoError(t, json.Unmarshal([]byte(out), &s))
		gt.Equal(t, s.Frames, 3)
		gt.Equal(t, s.Frame, 1)
		gt.Equal(t, s.Comment, "water frame 2")
	})

	t.Run("bad frame", func(t *testing.T) {
		_, err := runCLI(t, "info", "--frame", "5", filepath.Join(testData, "benzene.xyz"))
		gt.Error(t, err)
	})
}

func TestInferBonds(t *testing.T) {
	t.Run("falls back to cutoffs", func(t *testing.T) {
		mol, err := chem.XYZFileRead(strings.NewReader(unknownElement))
		gt.NoError(t, err)
		gt.NoError(t, inferBonds(mol, mol.Frame(0), config.DefaultBonds()))
		gt.Equal(t, len(chem.Bonds(mol)), 1)
	})

	t.Run("covalent radii", func(t *testing.T) {
		mol, err := chem.ReadFile(filepath.Join(testData, "ethanol.xyz"))
		gt.NoError(t, err)
		gt.NoError(t, inferBonds(mol, mol.Frame(0), config.DefaultBonds()))
		gt.Equal(t, len(chem.Bonds(mol)), 8)
	})
}

func TestSelectFrame(t *testing.T) {
	mol, err := chem.ReadFile(filepath.Join(testData, "water3.xyz"))
	gt.NoError(t, err)

	coords, err := selectFrame(mol, 2)
	gt.NoError(t, err)
	gt.Equal(t, coords.At(0, 2), 0.125)

	_, err = selectFrame(mol, 3)
	gt.Error(t, err)
	_, err = selectFrame(mol, -1)
	gt.Error(t, err)
}

func TestConvert(t *testing.T) {
	t.Run("xyz to compressed pdb", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "ethanol.pdb.gz")
		out, err := runCLI(t, "convert", filepath.Join(testData, "ethanol.xyz"), output)
		gt.NoError(t, err)
		gt.String(t, out).Contains(output)

		mol, err := chem.ReadFile(output)
		gt.NoError(t, err)
		gt.Equal(t, mol.Len(), 9)
		gt.Equal(t, chem.Formula(mol), "C2H6O")
	})

	t.Run("one frame of a trajectory", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "last.xyz")
		_, err := runCLI(t, "convert", "--frame", "2", filepath.Join(testData, "water3.xyz"), output)
		gt.NoError(t, err)

		mol, err := chem.ReadFile(output)
		gt.NoError(t, err)
		gt.Equal(t, mol.NFrames(), 1)
		gt.Equal(t, mol.Comment(0), "water frame 3")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := runCLI(t, "convert", filepath.Join(testData, "ethanol.xyz"))
		gt.Error(t, err)

		_, err = runCLI(t, "convert", filepath.Join(testData, "ethanol.xyz"), filepath.Join(t.TempDir(), "ethanol.mol2"))
		gt.Error(t, err)
	})
}
