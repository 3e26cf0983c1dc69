// Package token defines lexical token kinds and trivia for uwscript.
// Invariants:
//   - Token.Text is the exact source text of the token (keywords keep their
//     original spelling; only the lookup is case-insensitive). String
//     literals carry their value without quotes.
//   - Line breaks and ';' are significant and appear as EOL tokens; spaces,
//     tabs and comments are Trivia attached to the following token.
//   - The target of a `call` statement is a single PathLit or URILit token,
//     the library of a def_dll is a single DllPath token and the body of a
//     textblock is a single TextBlockBody token.
package token
