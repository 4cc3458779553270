package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disease-predictor/internal/artifact"
	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

const modelsDir = "../../models"

func defaultLocations() map[domain.Domain]string {
	locations := make(map[domain.Domain]string)
	for _, d := range schema.Domains() {
		locations[d] = string(d) + "_model.json"
	}
	return locations
}

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

// copyModels copies the bundled artifacts into a temp dir tests can modify
func copyModels(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(modelsDir)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(modelsDir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0644))
	}
	return dir
}

func TestLoadAll_BundledModels(t *testing.T) {
	logger, hook := test.NewNullLogger()

	r, err := LoadAll(context.Background(), defaultLocations(), WithBaseDir(modelsDir), WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, schema.Domains(), r.Domains())
	for _, d := range schema.Domains() {
		s, err := schema.GetSchema(d)
		require.NoError(t, err)

		info, ok := r.Info(d)
		require.True(t, ok)
		assert.Equal(t, s.Dimension(), info.Dimension, d)
		assert.Equal(t, "1.0.0", info.Version)
	}

	info, _ := r.Info(domain.DomainParkinsons)
	assert.Equal(t, FamilyRBFSVM, info.Family)

	assert.Equal(t, "Model registry ready", hook.LastEntry().Message)
}

func TestLoadAll_KnownPredictions(t *testing.T) {
	r, err := LoadAll(context.Background(), defaultLocations(), WithBaseDir(modelsDir), WithLogger(quietLogger()))
	require.NoError(t, err)

	tests := []struct {
		name   string
		domain domain.Domain
		vector domain.InputVector
		label  domain.Label
	}{
		{"diabetes typical", domain.DomainDiabetes, domain.InputVector{2, 120, 70, 20, 85, 28.5, 0.5, 33}, domain.LabelNegative},
		{"diabetes high glucose", domain.DomainDiabetes, domain.InputVector{6, 190, 72, 35, 200, 40, 1.2, 50}, domain.LabelPositive},
		{"thyroid normal tsh", domain.DomainThyroid, domain.InputVector{40, 0, 0, 2, 1, 2, 110}, domain.LabelNegative},
		{"thyroid high tsh low tt4", domain.DomainThyroid, domain.InputVector{40, 0, 0, 10, 1, 1.2, 60}, domain.LabelPositive},
		{"thyroid treated", domain.DomainThyroid, domain.InputVector{40, 0, 1, 10, 1, 2, 120}, domain.LabelNegative},
		{"lung no symptoms", domain.DomainLungCancer, domain.InputVector{1, 30, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, domain.LabelNegative},
		{"lung symptomatic", domain.DomainLungCancer, domain.InputVector{1, 60, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, domain.LabelPositive},
		{"heart exercise angina", domain.DomainHeartDisease, domain.InputVector{63, 1, 0, 145, 233, 1, 0, 150, 1, 2.3, 0, 3, 2}, domain.LabelNegative},
		{"heart no major vessels", domain.DomainHeartDisease, domain.InputVector{45, 0, 2, 130, 234, 0, 1, 175, 0, 0.6, 2, 0, 2}, domain.LabelPositive},
		{"parkinsons patient", domain.DomainParkinsons, domain.InputVector{
			119.992, 157.302, 74.997, 0.784, 0.00007, 0.0037, 0.00554, 0.01109, 0.04374, 0.426, 0.02182,
			0.0313, 0.02971, 0.06545, 0.02211, 21.033, 0.414783, 0.815285, -4.813031, 0.266482, 2.301442, 0.284654,
		}, domain.LabelPositive},
		{"parkinsons healthy", domain.DomainParkinsons, domain.InputVector{
			197.076, 206.896, 192.055, 0.289, 0.00001, 0.00166, 0.00168, 0.00498, 0.01098, 0.097, 0.00563,
			0.0068, 0.00802, 0.01689, 0.00339, 26.775, 0.422229, 0.741367, -7.3483, 0.177551, 1.743867, 0.085569,
		}, domain.LabelNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				label, err := r.Classify(tt.domain, tt.vector)
				require.NoError(t, err)
				assert.Equal(t, tt.label, label, "classification must be deterministic")
			}
		})
	}
}

func TestLoadAll_YAMLArtifact(t *testing.T) {
	dir := copyModels(t)
	data, err := os.ReadFile("testdata/thyroid_model.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thyroid_model.yaml"), data, 0644))

	locations := defaultLocations()
	locations[domain.DomainThyroid] = "thyroid_model.yaml"

	r, err := LoadAll(context.Background(), locations, WithBaseDir(dir), WithLogger(quietLogger()))
	require.NoError(t, err)

	info, _ := r.Info(domain.DomainThyroid)
	assert.Equal(t, "1.0.0-yaml", info.Version)
	assert.Equal(t, filepath.Join(dir, "thyroid_model.yaml"), info.Location)
}

func TestLoadAll_SQLiteArtifacts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	location := "sqlite://" + filepath.Join(dir, "models.db")

	store, err := artifact.CreateSQLStore(ctx, location, "")
	require.NoError(t, err)
	for _, d := range schema.Domains() {
		payload, err := os.ReadFile(filepath.Join(modelsDir, string(d)+"_model.json"))
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, &artifact.Artifact{Domain: d, Format: artifact.FormatJSON, Payload: payload}))
	}
	require.NoError(t, store.Close())

	locations := make(map[domain.Domain]string)
	for _, d := range schema.Domains() {
		locations[d] = location
	}

	loader := artifact.NewLoader(dir, quietLogger())
	defer loader.Close()

	r, err := LoadAll(ctx, locations, WithLoader(loader), WithLogger(quietLogger()))
	require.NoError(t, err)

	label, err := r.Classify(domain.DomainDiabetes, domain.InputVector{6, 190, 72, 35, 200, 40, 1.2, 50})
	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, label)
}

func TestLoadAll_Failures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, dir string, locations map[domain.Domain]string)
		domain domain.Domain
		errMsg string
	}{
		{
			name: "missing location",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				delete(locations, domain.DomainLungCancer)
			},
			domain: domain.DomainLungCancer,
			errMsg: "no artifact location configured",
		},
		{
			name: "unknown domain key",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				locations["flu"] = "flu_model.json"
			},
			domain: "flu",
			errMsg: `unknown disease domain "flu"`,
		},
		{
			name: "missing file",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "parkinsons_model.json")))
			},
			domain: domain.DomainParkinsons,
			errMsg: "failed to read artifact",
		},
		{
			name: "corrupt file",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "heart_disease_model.json"), []byte(`{"domain":`), 0644))
			},
			domain: domain.DomainHeartDisease,
			errMsg: "failed to decode JSON artifact",
		},
		{
			name: "artifact for another domain",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				locations[domain.DomainDiabetes] = "thyroid_model.json"
			},
			domain: domain.DomainDiabetes,
			errMsg: `artifact is for domain "thyroid"`,
		},
		{
			name: "dimension differs from schema",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				doc := `{"domain":"diabetes","family":"linear_svm","n_features":3,"coefficients":[1,2,3]}`
				require.NoError(t, os.WriteFile(filepath.Join(dir, "diabetes_model.json"), []byte(doc), 0644))
			},
			domain: domain.DomainDiabetes,
			errMsg: "diabetes expects 8 features, got 3",
		},
		{
			name: "unsupported extension",
			setup: func(t *testing.T, dir string, locations map[domain.Domain]string) {
				locations[domain.DomainThyroid] = "thyroid_model.sav"
			},
			domain: domain.DomainThyroid,
			errMsg: "unsupported artifact format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := copyModels(t)
			locations := defaultLocations()
			tt.setup(t, dir, locations)

			r, err := LoadAll(context.Background(), locations, WithBaseDir(dir), WithLogger(quietLogger()))
			require.Error(t, err)
			assert.Nil(t, r, "partial registries are never returned")

			var loadErr *domain.ModelLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.domain, loadErr.Domain)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, domain.ErrModelLoad, domain.ErrorCode(err))
		})
	}
}

func TestNewRegistry(t *testing.T) {
	constant := func(n int, label domain.Label) domain.Classifier {
		return domain.ClassifierFunc{N: n, Fn: func(domain.InputVector) (domain.Label, error) { return label, nil }}
	}

	classifiers := map[domain.Domain]domain.Classifier{
		domain.DomainDiabetes:     constant(8, domain.LabelPositive),
		domain.DomainHeartDisease: constant(13, domain.LabelNegative),
		domain.DomainParkinsons:   constant(22, domain.LabelNegative),
		domain.DomainLungCancer:   constant(15, domain.LabelNegative),
		domain.DomainThyroid:      constant(7, domain.LabelNegative),
	}

	r, err := NewRegistry(classifiers)
	require.NoError(t, err)

	label, err := r.Classify(domain.DomainDiabetes, make(domain.InputVector, 8))
	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, label)

	_, err = r.Classify(domain.DomainDiabetes, make(domain.InputVector, 7))
	var dim *domain.DimensionMismatchError
	require.ErrorAs(t, err, &dim)
	assert.Equal(t, domain.DimensionMismatchError{Domain: domain.DomainDiabetes, Expected: 8, Actual: 7}, *dim)

	_, err = r.Classify("flu", make(domain.InputVector, 8))
	var unknown *domain.UnknownDomainError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "flu", unknown.Domain)

	t.Run("incomplete", func(t *testing.T) {
		partial := map[domain.Domain]domain.Classifier{domain.DomainDiabetes: constant(8, 0)}
		_, err := NewRegistry(partial)
		var loadErr *domain.ModelLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, domain.DomainHeartDisease, loadErr.Domain)
	})

	t.Run("wrong dimension", func(t *testing.T) {
		bad := make(map[domain.Domain]domain.Classifier)
		for d, c := range classifiers {
			bad[d] = c
		}
		bad[domain.DomainThyroid] = constant(6, 0)
		_, err := NewRegistry(bad)
		require.ErrorAs(t, err, &dim)
		assert.Equal(t, 7, dim.Expected)
		assert.Equal(t, 6, dim.Actual)
	})

	t.Run("unknown domain", func(t *testing.T) {
		extra := map[domain.Domain]domain.Classifier{"flu": constant(3, 0)}
		_, err := NewRegistry(extra)
		require.ErrorAs(t, err, &unknown)
	})
}

func TestPrepare(t *testing.T) {
	payload, err := os.ReadFile(filepath.Join(modelsDir, "heart_disease_model.json"))
	require.NoError(t, err)
	a := &artifact.Artifact{Domain: domain.DomainHeartDisease, Format: artifact.FormatJSON, Payload: payload, Location: "heart.json"}

	c, info, err := Prepare(domain.DomainHeartDisease, a)
	require.NoError(t, err)
	assert.Equal(t, 13, c.Dimension())
	assert.Equal(t, Info{
		Domain:    domain.DomainHeartDisease,
		Family:    FamilyLogisticRegression,
		Version:   "1.0.0",
		Location:  "heart.json",
		Dimension: 13,
	}, info)

	_, _, err = Prepare(domain.DomainThyroid, a)
	assert.ErrorContains(t, err, `artifact is for domain "heart_disease"`)

	wrongSize := &Document{Domain: "thyroid", Family: FamilyLinearSVM, NFeatures: 3, Coefficients: []float64{1, 2, 3}}
	payload, err = wrongSize.Marshal(artifact.FormatYAML)
	require.NoError(t, err)
	_, _, err = Prepare(domain.DomainThyroid, &artifact.Artifact{Domain: domain.DomainThyroid, Format: artifact.FormatYAML, Payload: payload})
	var dim *domain.DimensionMismatchError
	require.ErrorAs(t, err, &dim)
	assert.Equal(t, 7, dim.Expected)
	assert.Equal(t, 3, dim.Actual)
}
