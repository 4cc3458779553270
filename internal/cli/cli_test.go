package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disease-predictor/internal/artifact"
	"github.com/disease-predictor/internal/domain"
)

const bundledModels = "../../models"

var diabetesSets = []string{
	"--set", "Pregnancies=2",
	"--set", "Glucose=120",
	"--set", "BloodPressure=70",
	"--set", "SkinThickness=20",
	"--set", "Insulin=85",
	"--set", "BMI=28.5",
	"--set", "DiabetesPedigreeFunction=0.5",
	"--set", "Age=33",
}

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config file using modelsDir plus extra YAML under models
func writeConfig(t *testing.T, modelsDir, locations string) string {
	t.Helper()
	abs, err := filepath.Abs(modelsDir)
	require.NoError(t, err)

	content := fmt.Sprintf("models:\n  dir: %s\n%slogging:\n  level: error\n  format: text\n", abs, locations)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func decodeResult(t *testing.T, out string) domain.PredictionResult {
	t.Helper()
	var result domain.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestDomainsCmd(t *testing.T) {
	out, _, err := run(t, "domains")
	require.NoError(t, err)

	assert.Contains(t, out, "DOMAIN")
	for _, d := range []string{"diabetes", "heart_disease", "parkinsons", "lung_cancer", "thyroid"} {
		assert.Contains(t, out, d)
	}
}

func TestDomainsCmd_JSON(t *testing.T) {
	out, _, err := run(t, "domains", "--json")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "diabetes", rows[0]["domain"])
	assert.EqualValues(t, 8, rows[0]["dimension"])
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := run(t, "schema", "diabetes")
	require.NoError(t, err)
	assert.Contains(t, out, "Glucose")
	assert.Contains(t, out, "DiabetesPedigreeFunction")

	out, _, err = run(t, "schema", "diabetes", "--json")
	require.NoError(t, err)
	var fields []domain.FieldSpec
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 8)
	assert.Equal(t, "Pregnancies", fields[0].Name)
	assert.Equal(t, 7, fields[7].Position)
}

func TestSchemaCmd_UnknownDomain(t *testing.T) {
	_, _, err := run(t, "schema", "flu")

	var unknown *domain.UnknownDomainError
	assert.True(t, errors.As(err, &unknown))
}

func TestPredictCmd_Set(t *testing.T) {
	cfg := writeConfig(t, bundledModels, "")

	out, _, err := run(t, append([]string{"predict", "--config", cfg, "--domain", "diabetes"}, diabetesSets...)...)
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, domain.DomainDiabetes, result.Domain)
	assert.Equal(t, domain.LabelNegative, result.Label)
	assert.Equal(t, domain.SeverityNegative, result.Severity)
}

func TestPredictCmd_InputFile(t *testing.T) {
	cfg := writeConfig(t, bundledModels, "")
	input := filepath.Join(t.TempDir(), "patient.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
		"Pregnancies": 6, "Glucose": 190, "BloodPressure": 72, "SkinThickness": 35,
		"Insulin": 200, "BMI": 40, "DiabetesPedigreeFunction": 1.2, "Age": 50
	}`), 0644))

	out, _, err := run(t, "predict", "-c", cfg, "-d", "diabetes", "-i", input)
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, domain.LabelPositive, result.Label)
	assert.Equal(t, domain.SeverityPositive, result.Severity)
	assert.NotContains(t, result.Message, "unlikely")
}

func TestPredictCmd_OutOfRange(t *testing.T) {
	cfg := writeConfig(t, bundledModels, "")
	args := append([]string{"predict", "--config", cfg, "--domain", "diabetes"}, diabetesSets...)
	args = append(args, "--set", "Glucose=600")

	out, _, err := run(t, args...)

	var outOfRange *domain.OutOfRangeError
	require.True(t, errors.As(err, &outOfRange), "got %v", err)
	assert.Equal(t, "Glucose", outOfRange.Field)
	assert.Empty(t, out)
}

func TestPredictCmd_BadArguments(t *testing.T) {
	cfg := writeConfig(t, bundledModels, "")

	t.Run("missing domain flag", func(t *testing.T) {
		_, _, err := run(t, "predict", "--config", cfg)
		assert.Error(t, err)
	})

	t.Run("malformed set", func(t *testing.T) {
		_, _, err := run(t, "predict", "--config", cfg, "--domain", "thyroid", "--set", "TSH")
		assert.ErrorContains(t, err, "want name=value")
	})

	t.Run("set and input together", func(t *testing.T) {
		_, _, err := run(t, "predict", "--config", cfg, "--domain", "thyroid", "--set", "TSH=1", "--input", "x.json")
		assert.Error(t, err)
	})

	t.Run("unknown domain", func(t *testing.T) {
		_, _, err := run(t, "predict", "--config", cfg, "--domain", "flu")
		var unknown *domain.UnknownDomainError
		assert.True(t, errors.As(err, &unknown))
	})
}

func TestPredictCmd_NoValues(t *testing.T) {
	cfg := writeConfig(t, bundledModels, "")

	_, _, err := run(t, "predict", "--config", cfg, "--domain", "thyroid")
	assert.ErrorContains(t, err, "no values given; thyroid expects age, sex, on_thyroxine, tsh, t3_measured, t3, tt4")
}

func TestPredictCmd_RequestID(t *testing.T) {
	models, err := filepath.Abs(bundledModels)
	require.NoError(t, err)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("models:\n  dir: "+models+"\nlogging:\n  level: info\n  format: json\n"), 0644))

	_, stderr, err := run(t, append([]string{"predict", "--config", cfg, "--domain", "diabetes", "--request-id", "intake-7"}, diabetesSets...)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"request_id":"intake-7"`)
	assert.Contains(t, stderr, "Prediction completed")
}

func TestPredictCmd_ModelLoadFailure(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), "")

	_, _, err := run(t, append([]string{"predict", "--config", cfg, "--domain", "diabetes"}, diabetesSets...)...)

	var loadErr *domain.ModelLoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)
	assert.Equal(t, domain.DomainDiabetes, loadErr.Domain)
}

func TestArtifactsImport_ThenPredictFromDatabase(t *testing.T) {
	db := "sqlite://" + filepath.Join(t.TempDir(), "models.db")
	source, err := filepath.Abs(filepath.Join(bundledModels, "diabetes_model.json"))
	require.NoError(t, err)

	out, _, err := run(t, "artifacts", "import", "--db", db, "--domain", "diabetes", source)
	require.NoError(t, err)
	assert.Contains(t, out, "imported diabetes model from "+source)
	assert.Contains(t, out, "linear_svm 1.0.0")

	out, _, err = run(t, "artifacts", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "diabetes\n", out)

	cfg := writeConfig(t, bundledModels, fmt.Sprintf("  locations:\n    diabetes: %s\n", db))
	out, _, err = run(t, append([]string{"predict", "--config", cfg, "--domain", "diabetes"}, diabetesSets...)...)
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, decodeResult(t, out).Label)
}

func TestArtifactsExport(t *testing.T) {
	db := "sqlite://" + filepath.Join(t.TempDir(), "models.db")
	source, err := filepath.Abs(filepath.Join(bundledModels, "thyroid_model.json"))
	require.NoError(t, err)

	_, _, err = run(t, "artifacts", "import", "--db", db, "--domain", "thyroid", source)
	require.NoError(t, err)

	out, _, err := run(t, "artifacts", "export", "--db", db, "--domain", "thyroid")
	require.NoError(t, err)
	assert.Contains(t, out, "family: decision_tree")

	// the exported YAML must import again as the same model
	exported := filepath.Join(t.TempDir(), "thyroid_model.yaml")
	require.NoError(t, os.WriteFile(exported, []byte(out), 0644))
	_, _, err = run(t, "artifacts", "import", "--db", db, "--domain", "thyroid", exported)
	require.NoError(t, err)

	out, _, err = run(t, "artifacts", "export", "--db", db, "--domain", "thyroid", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"family": "decision_tree"`)

	_, _, err = run(t, "artifacts", "export", "--db", db, "--domain", "diabetes")
	assert.ErrorContains(t, err, "no artifact stored for diabetes")
}

func TestArtifactsList(t *testing.T) {
	db := "sqlite://" + filepath.Join(t.TempDir(), "models.db")

	_, _, err := run(t, "artifacts", "list", "--db", db)
	assert.ErrorContains(t, err, "artifact database not found")

	store, err := artifact.CreateSQLStore(context.Background(), db, "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, stderr, err := run(t, "artifacts", "list", "--db", db)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "no artifacts stored")
}

func TestArtifactsImport_Rejects(t *testing.T) {
	db := "sqlite://" + filepath.Join(t.TempDir(), "models.db")
	heart, err := filepath.Abs(filepath.Join(bundledModels, "heart_disease_model.json"))
	require.NoError(t, err)

	t.Run("domain mismatch", func(t *testing.T) {
		_, _, err := run(t, "artifacts", "import", "--db", db, "--domain", "diabetes", heart)
		var loadErr *domain.ModelLoadError
		require.True(t, errors.As(err, &loadErr), "got %v", err)
		assert.ErrorContains(t, err, `artifact is for domain "heart_disease"`)
	})

	t.Run("undecodable artifact", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"domain":"diabetes"`), 0644))
		_, _, err := run(t, "artifacts", "import", "--db", db, "--domain", "diabetes", bad)
		var loadErr *domain.ModelLoadError
		assert.True(t, errors.As(err, &loadErr), "got %v", err)
	})

	t.Run("missing db flag", func(t *testing.T) {
		_, _, err := run(t, "artifacts", "import", "--domain", "heart_disease", heart)
		assert.Error(t, err)
	})
}

func TestReadValues(t *testing.T) {
	values, err := readValues("", []string{"Age=33", " BMI =28.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"Age": "33", "BMI": "28.5"}, values)

	yamlInput := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(yamlInput, []byte("Age: 33\nBMI: 28.5\n"), 0644))
	values, err = readValues(yamlInput, nil)
	require.NoError(t, err)
	assert.Equal(t, 33, values["Age"])
	assert.Equal(t, 28.5, values["BMI"])

	_, err = readValues(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.ErrorContains(t, err, "failed to read input")
}
