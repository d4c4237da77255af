/*
Package eos provides real-gas activity models: swappable correlations giving
the fugacity coefficient of a species as a function of temperature and total
pressure.

Models satisfy a single capability interface, ActivityModel, so the solver
core depends only on the call signature. Named implementations are exposed
through Models(), a read-only name-keyed registry built once at startup.
*/
package eos
