/*
Package application provides the application-layer plumbing shared by
the merklelib executables: configuration loading and saving, structured
logging, and a persistent log of signed tree heads.
*/
package application
