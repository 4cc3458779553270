package schema

import "github.com/disease-predictor/internal/domain"

// f declares a field with an explicit vector position
func f(pos int, name, label, help string, min, max float64) domain.FieldSpec {
	return domain.FieldSpec{
		Position:     pos,
		Name:         name,
		DisplayLabel: label,
		Help:         help,
		Min:          min,
		Max:          max,
	}
}

// definitions is the compiled-in schema set, co-versioned with the classifier
// artifacts. Positions must match the feature order used at training time.
var definitions = []definition{
	{
		domain:  domain.DomainDiabetes,
		title:   "Diabetes Prediction",
		disease: "diabetes",
		fields: []domain.FieldSpec{
			f(0, "Pregnancies", "Number of Pregnancies", "Enter number of times pregnant", 0, 20),
			f(1, "Glucose", "Glucose Level (mg/dL)", "Enter glucose level", 0, 500),
			f(2, "BloodPressure", "Blood Pressure (mmHg)", "Enter blood pressure value", 0, 200),
			f(3, "SkinThickness", "Skin Thickness (mm)", "Enter skin thickness value", 0, 100),
			f(4, "Insulin", "Insulin Level (μU/mL)", "Enter insulin level", 0, 1000),
			f(5, "BMI", "BMI (kg/m²)", "Enter Body Mass Index value", 0, 70),
			f(6, "DiabetesPedigreeFunction", "Diabetes Pedigree Function", "Enter diabetes pedigree function value", 0, 3),
			f(7, "Age", "Age (years)", "Enter age of the person", 0, 120),
		},
	},
	{
		domain:  domain.DomainHeartDisease,
		title:   "Heart Disease Prediction",
		disease: "heart disease",
		fields: []domain.FieldSpec{
			f(0, "age", "Age (years)", "Enter age of the person", 0, 120),
			f(1, "sex", "Sex (1=male; 0=female)", "Enter sex of the person", 0, 1),
			f(2, "cp", "Chest Pain Type (0-3)", "Enter chest pain type", 0, 3),
			f(3, "trestbps", "Resting Blood Pressure (mmHg)", "Enter resting blood pressure", 0, 250),
			f(4, "chol", "Serum Cholesterol (mg/dL)", "Enter serum cholesterol", 0, 600),
			f(5, "fbs", "Fasting Blood Sugar > 120 mg/dL (1=true; 0=false)", "Enter fasting blood sugar status", 0, 1),
			f(6, "restecg", "Resting ECG Results (0-2)", "Enter resting ECG results", 0, 2),
			f(7, "thalach", "Maximum Heart Rate (bpm)", "Enter maximum heart rate achieved", 0, 250),
			f(8, "exang", "Exercise Induced Angina (1=yes; 0=no)", "Enter exercise induced angina status", 0, 1),
			f(9, "oldpeak", "ST Depression by Exercise", "Enter ST depression value", 0, 10),
			f(10, "slope", "Slope of Peak Exercise ST Segment (0-2)", "Enter slope value", 0, 2),
			f(11, "ca", "Number of Major Vessels (0-3)", "Enter number of major vessels", 0, 3),
			f(12, "thal", "Thalassemia (0-2)", "Enter thal value", 0, 2),
		},
	},
	{
		domain:  domain.DomainParkinsons,
		title:   "Parkinson's Disease Prediction",
		disease: "Parkinson's disease",
		fields: []domain.FieldSpec{
			f(0, "fo", "MDVP:Fo(Hz)", "Average vocal fundamental frequency", 0, 500),
			f(1, "fhi", "MDVP:Fhi(Hz)", "Maximum vocal fundamental frequency", 0, 500),
			f(2, "flo", "MDVP:Flo(Hz)", "Minimum vocal fundamental frequency", 0, 500),
			f(3, "Jitter_percent", "MDVP:Jitter(%)", "Percentage variation in fundamental frequency", 0, 5),
			f(4, "Jitter_Abs", "MDVP:Jitter(Abs)", "Absolute jitter in microseconds", 0, 1),
			f(5, "RAP", "MDVP:RAP", "Relative amplitude perturbation", 0, 1),
			f(6, "PPQ", "MDVP:PPQ", "Five-point period perturbation quotient", 0, 1),
			f(7, "DDP", "Jitter:DDP", "Average absolute difference of differences", 0, 1),
			f(8, "Shimmer", "MDVP:Shimmer", "Local shimmer", 0, 1),
			f(9, "Shimmer_dB", "MDVP:Shimmer(dB)", "Local shimmer in decibels", 0, 5),
			f(10, "APQ3", "Shimmer:APQ3", "Three-point amplitude perturbation quotient", 0, 1),
			f(11, "APQ5", "Shimmer:APQ5", "Five-point amplitude perturbation quotient", 0, 1),
			f(12, "APQ", "MDVP:APQ", "Amplitude perturbation quotient", 0, 1),
			f(13, "DDA", "Shimmer:DDA", "Average absolute differences between consecutive differences", 0, 1),
			f(14, "NHR", "NHR", "Noise to harmonic ratio", 0, 1),
			f(15, "HNR", "HNR", "Harmonic to noise ratio", 0, 50),
			f(16, "RPDE", "RPDE", "Recurrence period density entropy", 0, 1),
			f(17, "DFA", "DFA", "Detrended fluctuation analysis", 0, 1),
			f(18, "spread1", "Spread1", "Nonlinear measure of fundamental frequency variation", -10, 10),
			f(19, "spread2", "Spread2", "Nonlinear measure of fundamental frequency variation", 0, 10),
			f(20, "D2", "D2", "Correlation dimension", 0, 10),
			f(21, "PPE", "PPE", "Pitch period entropy", 0, 1),
		},
	},
	{
		domain:  domain.DomainLungCancer,
		title:   "Lung Cancer Prediction",
		disease: "lung cancer",
		fields: []domain.FieldSpec{
			f(0, "GENDER", "Gender (1=Male; 0=Female)", "Enter gender of the person", 0, 1),
			f(1, "AGE", "Age (years)", "Enter age of the person", 0, 120),
			f(2, "SMOKING", "Smoking (1=Yes; 0=No)", "Enter if the person smokes", 0, 1),
			f(3, "YELLOW_FINGERS", "Yellow Fingers (1=Yes; 0=No)", "Enter if the person has yellow fingers", 0, 1),
			f(4, "ANXIETY", "Anxiety (1=Yes; 0=No)", "Enter if the person has anxiety", 0, 1),
			f(5, "PEER_PRESSURE", "Peer Pressure (1=Yes; 0=No)", "Enter if the person is under peer pressure", 0, 1),
			f(6, "CHRONIC_DISEASE", "Chronic Disease (1=Yes; 0=No)", "Enter if the person has a chronic disease", 0, 1),
			f(7, "FATIGUE", "Fatigue (1=Yes; 0=No)", "Enter if the person experiences fatigue", 0, 1),
			f(8, "ALLERGY", "Allergy (1=Yes; 0=No)", "Enter if the person has allergies", 0, 1),
			f(9, "WHEEZING", "Wheezing (1=Yes; 0=No)", "Enter if the person experiences wheezing", 0, 1),
			f(10, "ALCOHOL_CONSUMING", "Alcohol Consuming (1=Yes; 0=No)", "Enter if the person consumes alcohol", 0, 1),
			f(11, "COUGHING", "Coughing (1=Yes; 0=No)", "Enter if the person experiences coughing", 0, 1),
			f(12, "SHORTNESS_OF_BREATH", "Shortness Of Breath (1=Yes; 0=No)", "Enter if the person experiences shortness of breath", 0, 1),
			f(13, "SWALLOWING_DIFFICULTY", "Swallowing Difficulty (1=Yes; 0=No)", "Enter if the person has difficulty swallowing", 0, 1),
			f(14, "CHEST_PAIN", "Chest Pain (1=Yes; 0=No)", "Enter if the person experiences chest pain", 0, 1),
		},
	},
	{
		domain:  domain.DomainThyroid,
		title:   "Hypo-Thyroid Prediction",
		disease: "Hypo-Thyroid disease",
		fields: []domain.FieldSpec{
			f(0, "age", "Age (years)", "Enter age of the person", 0, 120),
			f(1, "sex", "Sex (1=Male; 0=Female)", "Enter sex of the person", 0, 1),
			f(2, "on_thyroxine", "On Thyroxine (1=Yes; 0=No)", "Enter if the person is on thyroxine", 0, 1),
			f(3, "tsh", "TSH Level (mU/L)", "Enter TSH level", 0, 100),
			f(4, "t3_measured", "T3 Measured (1=Yes; 0=No)", "Enter if T3 was measured", 0, 1),
			f(5, "t3", "T3 Level (nmol/L)", "Enter T3 level", 0, 10),
			f(6, "tt4", "TT4 Level (nmol/L)", "Enter TT4 level", 0, 300),
		},
	},
}
