package client

// PricePrediction is the success body of a price prediction.
type PricePrediction struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// Classification is the success body of an image classification.
type Classification struct {
	Prediction      string  `json:"prediction"`
	Confidence      string  `json:"confidence"`
	ConfidenceValue float64 `json:"confidence_value"`
	Filename        string  `json:"filename"`
}

// priceBody and classificationBody are the wire shapes; pointer fields tell a
// missing key apart from a zero value.
type priceBody struct {
	PredictedPrice *float64 `json:"predicted_price"`
}

func (b priceBody) prediction() (PricePrediction, error) {
	if b.PredictedPrice == nil {
		return PricePrediction{}, errMissing("predicted_price")
	}
	return PricePrediction{PredictedPrice: *b.PredictedPrice}, nil
}

type classificationBody struct {
	Prediction      *string  `json:"prediction"`
	Confidence      string   `json:"confidence"`
	ConfidenceValue *float64 `json:"confidence_value"`
	Filename        string   `json:"filename"`
}

func (b classificationBody) classification() (Classification, error) {
	if b.Prediction == nil {
		return Classification{}, errMissing("prediction")
	}
	if b.ConfidenceValue == nil {
		return Classification{}, errMissing("confidence_value")
	}
	return Classification{
		Prediction:      *b.Prediction,
		Confidence:      b.Confidence,
		ConfidenceValue: *b.ConfidenceValue,
		Filename:        b.Filename,
	}, nil
}

type errorBody struct {
	Detail any `json:"detail"`
}
