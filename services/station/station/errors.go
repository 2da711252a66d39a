package station

import "errors"

var errEmptyStationID = errors.New("empty station ID")

var errNoAggregators = errors.New("no metric aggregators provided")

var errNilAggregator = errors.New("nil metric aggregator")

var errDuplicatedName = errors.New("duplicated metric aggregator name")

var errFieldNameCollision = errors.New("summary field name collision")
