/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under the "_c:<package>"
key. The initial value is loaded from the genesis file (see InitConfig) and
can later be changed by a message signed by the configuration owner (see
UpdateConfigurationHandler).
*/
package gconf
