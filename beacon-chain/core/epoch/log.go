package epoch

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "epoch")
