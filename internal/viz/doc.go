// Package viz provides terminal visualization for simulation runs.
//
// Static trajectories are plotted with asciigraph; the live viewer is a
// Bubble Tea program stepping a solver in real time and charting level
// populations:
//
//   - [Plot], [PlotMany]: ascii charts of observable series
//   - [Live]: interactive population viewer
package viz
