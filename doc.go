// Package linreg fits a univariate linear model of car price as a function
// of mileage.
//
// linreg provides the numeric core shared by the training and prediction
// commands: sample validation, mileage normalization, prediction, the
// full-batch gradient of the mean squared error, and the exported [Model].
// Gradient descent and the hyperparameter search live in the
// linreg/optimizer subpackage.
//
// Basic usage:
//
//	ds, err := linreg.NewDataset(samples)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ws := ds.NewWorkspace()
//	grad := ws.Gradient(linreg.Theta{})
package linreg
