/*
Package solubility provides dissolved-volatile models: swappable correlations
giving the concentration of a species dissolved in a molten reservoir as a
function of temperature, pressure and fugacity.

Like package eos, implementations satisfy one capability interface and are
exposed through a name-keyed registry.
*/
package solubility
