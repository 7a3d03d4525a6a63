package dashboard

// Stable element ids shared by every view implementation.
const (
	IDLoading   = "loadingSpinner"
	IDError     = "errorMessage"
	IDErrorText = "errorText"
	IDContent   = "mainContent"

	IDAccuracy  = "accuracyValue"
	IDAlgorithm = "algorithmValue"
	IDDataset   = "datasetValue"
	IDFeatures  = "featuresValue"

	IDSplitPanel = "splitPanel"
	IDTrainSize  = "trainSizeValue"
	IDTestSize   = "testSizeValue"
	IDTrainRatio = "trainRatioValue"
	IDTestRatio  = "testRatioValue"

	IDPrecision0       = "precision0"
	IDPrecision1       = "precision1"
	IDRecall0          = "recall0"
	IDRecall1          = "recall1"
	IDF1Score0         = "f1score0"
	IDF1Score1         = "f1score1"
	IDPrecisionAvg     = "precisionAvg"
	IDRecallAvg        = "recallAvg"
	IDF1ScoreAvg       = "f1scoreAvg"
	IDTotalPredictions = "totalPredictionsValue"

	IDConfusionMatrix  = "confusionMatrix"
	IDPredictionsTable = "predictionsTable"

	CanvasPerformance = "performanceChart"
	CanvasPrediction  = "predictionChart"
)

// Cell is one rendered table or grid cell.
type Cell struct {
	Text  string
	Class string
}

// View is the UI surface the controller writes into. Every call replaces
// whatever the element held before.
type View interface {
	SetText(id, text string)
	SetVisibility(id string, visible bool)
	RenderTable(id string, rows [][]Cell)
}

// Chart is a live chart instance bound to a canvas.
type Chart interface {
	Destroy()
}

// ChartRenderer draws charts. Each Render call creates a new instance; the
// caller owns it and must Destroy it before drawing on the same canvas again.
type ChartRenderer interface {
	Render(canvas string, spec ChartSpec) (Chart, error)
}
