package asm

import (
	"strings"
)

// NodeKind is the statement form of a node.
type NodeKind int

const (
	NODE_LABEL = NodeKind(iota) // ID ':'
	NODE_OP2                    // MNEMONIC dest ',' source
	NODE_OP1                    // MNEMONIC target
	NODE_OP0                    // MNEMONIC, or a bare register
)

// Node is one statement. A and B are nil when the form has no such operand.
type Node struct {
	Kind NodeKind
	Op   Token
	A    *Token
	B    *Token
}

// String returns the statement as canonical source text.
func (node Node) String() string {
	switch node.Kind {
	case NODE_LABEL:
		return node.Op.Value + ":"
	case NODE_OP2:
		return node.Op.Text() + " " + node.A.Text() + ", " + node.B.Text()
	case NODE_OP1:
		return node.Op.Text() + " " + node.A.Text()
	}
	return node.Op.Text()
}

// Parser is a recursive descent parser over the grammar:
//
//	program   := { statement } EOF
//	statement := ID ':' | OP2 operand ',' operand | OP1 operand | OP0 | REG
//	operand   := REG | ID | NUMBER | EXPR
type Parser struct {
	tokens []Token
	pos    int
	nodes  []Node
}

// Parse a token list into statements.
func Parse(tokens []Token) (nodes []Node, err error) {
	p := &Parser{tokens: tokens}

	for p.peek().Kind != TOKEN_EOF {
		var node Node
		node, err = p.statement()
		if err != nil {
			return
		}
		p.nodes = append(p.nodes, node)
	}

	nodes = p.nodes
	return
}

func (p *Parser) peekAt(n int) (tok Token) {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	if len(p.tokens) > 0 {
		tok = p.tokens[len(p.tokens)-1]
	}
	tok.Kind = TOKEN_EOF
	tok.Value = ""
	return
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) next() (tok Token) {
	tok = p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return
}

func (p *Parser) fail(tok Token, text string, err error) error {
	return ErrSyntax{
		Statement: len(p.nodes),
		Line:      tok.Line,
		Col:       tok.Col,
		Text:      text,
		Err:       err,
	}
}

func (p *Parser) statement() (node Node, err error) {
	tok := p.next()
	node.Op = tok

	switch tok.Kind {
	case TOKEN_ID:
		if p.peek().Kind != TOKEN_COLON {
			err = p.fail(tok, tok.Text(), ErrStatementInvalid)
			return
		}
		p.next()
		node.Kind = NODE_LABEL
		return
	case TOKEN_KEYWORD:
		if _, ok := tok.Register(); ok {
			node.Kind = NODE_OP0
			return
		}
	default:
		err = p.fail(tok, tok.Text(), ErrTokenUnexpected)
		return
	}

	mn, _ := tok.Mnemonic()
	switch mn.Arity() {
	case 2:
		node.Kind = NODE_OP2
		node.A, err = p.operand(node)
		if err != nil {
			return
		}
		if p.peek().Kind != TOKEN_COMMA {
			err = p.fail(p.peek(), node.Op.Text()+" "+node.A.Text(), ErrCommaMissing)
			return
		}
		p.next()
		node.B, err = p.operand(node)
	case 1:
		node.Kind = NODE_OP1
		node.A, err = p.operand(node)
	default:
		node.Kind = NODE_OP0
	}

	return
}

// operand accepts a register, label, number or expression. A mnemonic, or
// a label declaration, starts the next statement and so is a missing operand.
func (p *Parser) operand(node Node) (operand *Token, err error) {
	tok := p.peek()

	ok := false
	switch tok.Kind {
	case TOKEN_KEYWORD:
		_, ok = tok.Register()
	case TOKEN_ID:
		ok = p.peekAt(1).Kind != TOKEN_COLON
	case TOKEN_NUMBER, TOKEN_EXPR:
		ok = true
	}

	if !ok {
		text := []string{node.Op.Text()}
		if node.A != nil {
			text = append(text, node.A.Text())
		}
		err = p.fail(tok, strings.Join(text, " "), ErrOperandMissing)
		return
	}

	p.next()
	operand = &tok
	return
}
